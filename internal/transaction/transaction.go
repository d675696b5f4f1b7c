package transaction

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("transaction not found")

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single cash-flow entry.
type Transaction struct {
	ID          string
	Date        time.Time
	Amount      int64 // Amount in cents, never negative
	Category    string
	Description string
	Type        Type
}

func (t *Transaction) clone() *Transaction {
	c := *t
	return &c
}
