package transaction

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Repository receives a full snapshot of the collection after every change.
//
//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	SaveTransactions(ctx context.Context, txs []*Transaction)
}

// Service is the in-memory, insertion-ordered transaction collection. It is
// not safe for concurrent use; the owner serializes access.
type Service struct {
	repo  Repository
	newID func() string
	txs   []*Transaction
}

type Option func(*Service)

// WithIDGenerator replaces the default UUIDv4 generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// NewService seeds the collection with initial, typically loaded from storage.
// Only the first record for a given id is kept. Seeding does not trigger a
// save.
func NewService(repo Repository, initial []*Transaction, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		newID: uuid.NewString,
		txs:   make([]*Transaction, 0, len(initial)),
	}

	for _, opt := range opts {
		opt(s)
	}

	for _, tx := range initial {
		if tx.ID != "" && s.indexOf(tx.ID) >= 0 {
			continue
		}

		s.txs = append(s.txs, tx.clone())
	}

	return s
}

type CreateParams struct {
	Date        time.Time
	Amount      int64
	Category    string
	Description string
	Type        Type
}

// Add stores a new transaction at the end of the collection.
func (s *Service) Add(ctx context.Context, params CreateParams) *Transaction {
	tx := &Transaction{
		ID:          s.uniqueID(),
		Date:        params.Date,
		Amount:      params.Amount,
		Category:    params.Category,
		Description: params.Description,
		Type:        params.Type,
	}

	s.txs = append(s.txs, tx)
	s.save(ctx)

	return tx.clone()
}

// Delete removes every transaction with the given id. Unknown ids are ignored.
func (s *Service) Delete(ctx context.Context, id string) {
	n := len(s.txs)

	s.txs = slices.DeleteFunc(s.txs, func(tx *Transaction) bool {
		return tx.ID == id
	})

	if len(s.txs) != n {
		s.save(ctx)
	}
}

// Update replaces the stored record that has tx.ID. Unknown ids are ignored.
func (s *Service) Update(ctx context.Context, tx *Transaction) {
	idx := s.indexOf(tx.ID)
	if idx < 0 {
		return
	}

	s.txs[idx] = tx.clone()
	s.save(ctx)
}

func (s *Service) Get(id string) (*Transaction, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	return s.txs[idx].clone(), nil
}

// List returns copies of all transactions in insertion order.
func (s *Service) List() []*Transaction {
	out := make([]*Transaction, len(s.txs))
	for i, tx := range s.txs {
		out[i] = tx.clone()
	}

	return out
}

// Import appends records whose id is not already present. Records without an
// id get a fresh one. It returns the number of records appended.
func (s *Service) Import(ctx context.Context, txs []*Transaction) int {
	added := 0

	for _, tx := range txs {
		c := tx.clone()

		if c.ID == "" {
			c.ID = s.uniqueID()
		} else if s.indexOf(c.ID) >= 0 {
			continue
		}

		s.txs = append(s.txs, c)
		added++
	}

	if added > 0 {
		s.save(ctx)
	}

	return added
}

func (s *Service) uniqueID() string {
	for {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

func (s *Service) indexOf(id string) int {
	return slices.IndexFunc(s.txs, func(tx *Transaction) bool {
		return tx.ID == id
	})
}

func (s *Service) save(ctx context.Context) {
	s.repo.SaveTransactions(ctx, s.List())
}
