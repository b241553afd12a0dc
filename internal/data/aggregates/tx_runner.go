package aggregates

import (
	"context"

	"gorm.io/gorm"

	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
	"github.com/yungbote/personnel-backend/internal/pkg/dbctx"
)

// TxRunner opens the single transaction an aggregate write runs in.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

// TxRunnerFunc lets a plain function serve as a TxRunner.
type TxRunnerFunc func(ctx context.Context, fn func(dbc dbctx.Context) error) error

func (f TxRunnerFunc) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return f(ctx, fn)
}

// NewGormTxRunner commits when fn returns nil and rolls back on error or panic.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return TxRunnerFunc(func(ctx context.Context, fn func(dbc dbctx.Context) error) error {
		if db == nil {
			return domainagg.NewError(domainagg.CodeInternal, "Personnel.Tx", "no database handle", nil)
		}
		if fn == nil {
			return nil
		}
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(dbctx.Context{Ctx: ctx, Tx: tx})
		})
	})
}
