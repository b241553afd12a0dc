package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with the transaction a unit of work runs on.
// Tx is nil outside a transaction; repos then fall back to their own handle.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// DB returns Tx bound to Ctx, or fallback bound to Ctx when no tx is open.
func (c Context) DB(fallback *gorm.DB) *gorm.DB {
	db := c.Tx
	if db == nil {
		db = fallback
	}
	if db == nil {
		return nil
	}
	if c.Ctx == nil {
		return db
	}
	return db.WithContext(c.Ctx)
}
