package store

import (
	"context"
	"strings"

	"github.com/MrJamesThe3rd/cashflow/internal/transaction"
)

// Lister is satisfied by app.State.
type Lister interface {
	AllTransactions() []*transaction.Transaction
}

// Store matches descriptions against the transactions already recorded.
type Store struct {
	txs Lister
}

func New(txs Lister) *Store {
	return &Store{txs: txs}
}

// FindMatch picks the category of the most recently added transaction whose
// description equals the query or contains it (or the other way around),
// ignoring case. Exact matches win over partial ones.
func (s *Store) FindMatch(_ context.Context, description string) (string, error) {
	query := strings.ToLower(description)
	txs := s.txs.AllTransactions()

	partial := ""

	for i := len(txs) - 1; i >= 0; i-- {
		tx := txs[i]
		if tx.Category == "" || tx.Description == "" {
			continue
		}

		desc := strings.ToLower(tx.Description)

		if desc == query {
			return tx.Category, nil
		}

		if partial == "" && (strings.Contains(desc, query) || strings.Contains(query, desc)) {
			partial = tx.Category
		}
	}

	return partial, nil
}
