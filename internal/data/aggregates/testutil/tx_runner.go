package testutil

import (
	"context"
	"sync"

	"github.com/yungbote/personnel-backend/internal/data/aggregates"
	"github.com/yungbote/personnel-backend/internal/pkg/dbctx"
)

// InjectedTxRunner wraps an optional real runner and injects failures around
// the body. With a nil Inner the body runs without a transaction.
type InjectedTxRunner struct {
	mu sync.Mutex

	Inner aggregates.TxRunner

	FailBegin error
	// FailAfterBody is returned from inside the transaction after the body
	// succeeds, so the inner runner has to roll back work already done.
	FailAfterBody error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin := r.FailBegin
	failAfterBody := r.FailAfterBody
	inner := r.Inner
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}

	body := func(dbc dbctx.Context) error {
		if fn != nil {
			if err := fn(dbc); err != nil {
				return err
			}
		}
		return failAfterBody
	}

	var err error
	if inner != nil {
		err = inner.InTx(ctx, body)
	} else {
		err = body(dbctx.Context{Ctx: ctx})
	}

	r.mu.Lock()
	if err != nil {
		r.RollbackCalls++
	} else {
		r.CommitCalls++
	}
	r.mu.Unlock()
	return err
}
