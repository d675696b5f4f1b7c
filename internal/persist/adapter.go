// Package persist mirrors the transaction collection and the category set into
// two slots. Loading never fails: absent or unreadable slots fall back to an
// empty collection and to the default categories. Save failures are logged and
// swallowed so the in-memory state stays usable.
package persist

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/MrJamesThe3rd/cashflow/internal/slot"
	"github.com/MrJamesThe3rd/cashflow/internal/transaction"
)

type Adapter struct {
	store    slot.Store
	defaults []string
}

func New(store slot.Store, defaultCategories []string) *Adapter {
	return &Adapter{store: store, defaults: slices.Clone(defaultCategories)}
}

func (a *Adapter) LoadTransactions(ctx context.Context) []*transaction.Transaction {
	data, ok := a.read(ctx, slot.Transactions)
	if !ok {
		return []*transaction.Transaction{}
	}

	txs, err := decodeTransactions(data)
	if err != nil {
		slog.WarnContext(ctx, "discarding unreadable slot", "slot", slot.Transactions, "error", err)
		return []*transaction.Transaction{}
	}

	return txs
}

func (a *Adapter) LoadCategories(ctx context.Context) []string {
	data, ok := a.read(ctx, slot.Categories)
	if !ok {
		return slices.Clone(a.defaults)
	}

	labels, err := decodeCategories(data)
	if err != nil {
		slog.WarnContext(ctx, "discarding unreadable slot", "slot", slot.Categories, "error", err)
		return slices.Clone(a.defaults)
	}

	if labels == nil {
		return []string{}
	}

	return labels
}

func (a *Adapter) SaveTransactions(ctx context.Context, txs []*transaction.Transaction) {
	data, err := encodeTransactions(txs)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode transactions", "error", err)
		return
	}

	a.write(ctx, slot.Transactions, data)
}

func (a *Adapter) SaveCategories(ctx context.Context, labels []string) {
	data, err := encodeCategories(labels)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode categories", "error", err)
		return
	}

	a.write(ctx, slot.Categories, data)
}

func (a *Adapter) read(ctx context.Context, name string) ([]byte, bool) {
	data, err := a.store.Get(ctx, name)
	if err != nil {
		if !errors.Is(err, slot.ErrNotFound) {
			slog.WarnContext(ctx, "failed to read slot", "slot", name, "error", err)
		}

		return nil, false
	}

	return data, true
}

func (a *Adapter) write(ctx context.Context, name string, data []byte) {
	if err := a.store.Put(ctx, name, data); err != nil {
		slog.ErrorContext(ctx, "failed to write slot", "slot", name, "error", err)
	}
}
