package matching

import (
	"context"
	"strings"
)

type Repository interface {
	FindMatch(ctx context.Context, description string) (string, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns a category for the given description based on earlier
// transactions. Returns empty string if no match found.
func (s *Service) Suggest(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, description)
}
