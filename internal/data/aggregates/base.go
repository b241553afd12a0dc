package aggregates

import (
	"context"
	"strings"
	"time"

	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
	"github.com/yungbote/personnel-backend/internal/pkg/dbctx"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
	Hooks  Hooks
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = metricsHooks{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return d
}

// executeWrite runs fn in one transaction and reports the outcome to hooks.
// A failed write leaves the store untouched and is never retried.
func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	deps = deps.withDefaults()
	if op = strings.TrimSpace(op); op == "" {
		op = "Personnel.Write"
	}

	start := time.Now()
	cause := deps.Runner.InTx(ctx, fn)
	err := MapError(op, cause)
	status := aggregateErrorStatus(err)
	defer func() { deps.Hooks.ObserveOperation(op, status, time.Since(start)) }()

	if err == nil {
		return nil
	}
	deps.Hooks.IncRollback(op)
	switch domainagg.CodeOf(err) {
	case domainagg.CodeConflict:
		deps.Hooks.IncConflict(op)
		deps.Log.Debug("aggregate write rejected", "op", op, "code", status, "error", err)
	case domainagg.CodeInternal:
		deps.Log.Error("aggregate write failed", "op", op, "error", cause)
	default:
		deps.Log.Debug("aggregate write rejected", "op", op, "code", status, "error", err)
	}
	return err
}

// aggregateErrorStatus is the hook status label: "success" or an error code.
func aggregateErrorStatus(err error) string {
	if err == nil {
		return "success"
	}
	if code := domainagg.CodeOf(err); code != "" {
		return string(code)
	}
	return string(domainagg.CodeOf(MapError("Personnel.Status", err)))
}
