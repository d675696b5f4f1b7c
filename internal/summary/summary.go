// Package summary derives the filtered view and the income/expense totals
// from a list of transactions. Everything here is a pure function of its
// inputs and is recomputed on every read.
package summary

import (
	"math"

	"github.com/MrJamesThe3rd/cashflow/internal/amount"
	"github.com/MrJamesThe3rd/cashflow/internal/transaction"
)

// Summary holds totals in cents.
type Summary struct {
	TotalIncome  int64
	TotalExpense int64
	Balance      int64
}

// Formatted renders the three totals with f.
func (s Summary) Formatted(f *amount.Formatter) (income, expense, balance string) {
	return f.Format(s.TotalIncome), f.Format(s.TotalExpense), f.Format(s.Balance)
}

// Filter returns the transactions whose category equals category exactly. An
// empty category selects everything.
func Filter(txs []*transaction.Transaction, category string) []*transaction.Transaction {
	if category == "" {
		return txs
	}

	out := make([]*transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if tx.Category == category {
			out = append(out, tx)
		}
	}

	return out
}

// Compute totals txs by type. Totals clamp at the int64 range instead of
// wrapping.
func Compute(txs []*transaction.Transaction) Summary {
	var s Summary

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			s.TotalIncome = addSat(s.TotalIncome, tx.Amount)
		case transaction.TypeExpense:
			s.TotalExpense = addSat(s.TotalExpense, tx.Amount)
		}
	}

	s.Balance = subSat(s.TotalIncome, s.TotalExpense)

	return s
}

func addSat(a, b int64) int64 {
	sum := a + b

	switch {
	case b > 0 && sum < a:
		return math.MaxInt64
	case b < 0 && sum > a:
		return math.MinInt64
	}

	return sum
}

func subSat(a, b int64) int64 {
	diff := a - b

	switch {
	case b < 0 && diff < a:
		return math.MaxInt64
	case b > 0 && diff > a:
		return math.MinInt64
	}

	return diff
}

// View filters txs by category and aggregates the result.
func View(txs []*transaction.Transaction, category string) ([]*transaction.Transaction, Summary) {
	filtered := Filter(txs, category)
	return filtered, Compute(filtered)
}
