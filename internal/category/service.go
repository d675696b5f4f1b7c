// Package category keeps the set of category labels transactions can be
// tagged with.
package category

import (
	"context"
	"slices"
)

// DefaultCategories seeds the registry when nothing has been stored yet.
var DefaultCategories = []string{"Food", "Transport", "Entertainment", "Salary"}

// Repository receives the full label list after every change.
//
//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	SaveCategories(ctx context.Context, labels []string)
}

// Service is an insertion-ordered set of labels. Labels are compared exactly,
// so "food" and "Food" are distinct. Removing a label never touches the
// transactions that reference it.
type Service struct {
	repo   Repository
	labels []string
}

// NewService seeds the registry with initial, dropping duplicates. Seeding
// does not trigger a save.
func NewService(repo Repository, initial []string) *Service {
	s := &Service{repo: repo}

	for _, l := range initial {
		if !s.Contains(l) {
			s.labels = append(s.labels, l)
		}
	}

	return s
}

// Add inserts label unless it is already present and reports whether the set
// changed.
func (s *Service) Add(ctx context.Context, label string) bool {
	if s.Contains(label) {
		return false
	}

	s.labels = append(s.labels, label)
	s.save(ctx)

	return true
}

// Delete removes label if present and reports whether the set changed.
func (s *Service) Delete(ctx context.Context, label string) bool {
	idx := slices.Index(s.labels, label)
	if idx < 0 {
		return false
	}

	s.labels = slices.Delete(s.labels, idx, idx+1)
	s.save(ctx)

	return true
}

func (s *Service) Contains(label string) bool {
	return slices.Contains(s.labels, label)
}

func (s *Service) List() []string {
	return slices.Clone(s.labels)
}

func (s *Service) save(ctx context.Context) {
	s.repo.SaveCategories(ctx, s.List())
}
