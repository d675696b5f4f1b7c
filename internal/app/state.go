// Package app holds the application state container: the transaction
// collection, the category set and the category filter. It is the only writer
// of either collection; presentation layers call its operations and re-read
// the derived view afterwards.
package app

import (
	"context"
	"sync"

	"github.com/MrJamesThe3rd/cashflow/internal/category"
	"github.com/MrJamesThe3rd/cashflow/internal/persist"
	"github.com/MrJamesThe3rd/cashflow/internal/summary"
	"github.com/MrJamesThe3rd/cashflow/internal/transaction"
)

// Storage loads the initial state and receives snapshots after changes.
type Storage interface {
	transaction.Repository
	category.Repository
	LoadTransactions(ctx context.Context) []*transaction.Transaction
	LoadCategories(ctx context.Context) []string
}

var _ Storage = (*persist.Adapter)(nil)

// State serializes every operation with a mutex so concurrent callers observe
// a single writer.
type State struct {
	mu         sync.Mutex
	txs        *transaction.Service
	categories *category.Service
	selected   string
}

func New(ctx context.Context, storage Storage, opts ...transaction.Option) *State {
	return &State{
		txs:        transaction.NewService(storage, storage.LoadTransactions(ctx), opts...),
		categories: category.NewService(storage, storage.LoadCategories(ctx)),
	}
}

func (s *State) AddTransaction(ctx context.Context, params transaction.CreateParams) *transaction.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.txs.Add(persistCtx(ctx), params)
}

func (s *State) DeleteTransaction(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs.Delete(persistCtx(ctx), id)
}

// EditTransaction replaces the whole stored record; callers merge edits first.
func (s *State) EditTransaction(ctx context.Context, tx *transaction.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs.Update(persistCtx(ctx), tx)
}

func (s *State) Transaction(id string) (*transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.txs.Get(id)
}

func (s *State) AddCategory(ctx context.Context, label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.categories.Add(persistCtx(ctx), label)
}

// DeleteCategory leaves transactions tagged with label untouched. If label is
// the active filter, the filter stays as is and simply keeps matching those
// transactions.
func (s *State) DeleteCategory(ctx context.Context, label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.categories.Delete(persistCtx(ctx), label)
}

// persistCtx keeps request values but drops cancellation: once the in-memory
// change is made the snapshot write must not be abandoned with it.
func persistCtx(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func (s *State) SelectCategoryFilter(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = label
}

func (s *State) SelectedCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selected
}

func (s *State) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.categories.List()
}

func (s *State) AllTransactions() []*transaction.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.txs.List()
}

// Transactions returns the view under the selected filter.
func (s *State) Transactions() []*transaction.Transaction {
	txs, _ := s.View()
	return txs
}

func (s *State) Summary() summary.Summary {
	_, sum := s.View()
	return sum
}

// View returns the filtered transactions and their totals under the selected
// filter.
func (s *State) View() ([]*transaction.Transaction, summary.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return summary.View(s.txs.List(), s.selected)
}

// ViewFor is View with an explicit filter that does not change the selection.
func (s *State) ViewFor(label string) ([]*transaction.Transaction, summary.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return summary.View(s.txs.List(), label)
}
