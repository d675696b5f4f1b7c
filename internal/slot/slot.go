// Package slot describes durable named storage slots. Each slot holds one
// opaque document that is always overwritten as a whole.
package slot

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("slot not found")

const (
	Transactions = "transactions"
	Categories   = "categories"
)

type Store interface {
	// Get returns the slot content or ErrNotFound if the slot was never written.
	Get(ctx context.Context, name string) ([]byte, error)
	// Put replaces the slot content.
	Put(ctx context.Context, name string, data []byte) error
}
