package app

import (
	"context"

	"github.com/MrJamesThe3rd/cashflow/internal/transaction"
)

// Snapshot is a full copy of the persisted state.
type Snapshot struct {
	Transactions []*transaction.Transaction
	Categories   []string
}

type RestoreResult struct {
	Transactions int
	Categories   int
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Transactions: s.txs.List(),
		Categories:   s.categories.List(),
	}
}

// Restore merges snap into the current state. Categories are added
// idempotently and transactions whose id already exists are skipped.
func (s *State) Restore(ctx context.Context, snap Snapshot) RestoreResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = persistCtx(ctx)

	var res RestoreResult

	for _, label := range snap.Categories {
		if label == "" {
			continue
		}

		if s.categories.Add(ctx, label) {
			res.Categories++
		}
	}

	res.Transactions = s.txs.Import(ctx, snap.Transactions)

	return res
}
