package identity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tendant/simple-actas/pkg/principal"
)

// LookupService resolves principals by primary key or username,
// intersected with an arbitrary filter constraint set. Lookups are pure
// reads with no side effects.
type LookupService struct {
	repository IdentityRepository
}

// NewLookupService creates a new lookup service over the given repository.
func NewLookupService(repository IdentityRepository) *LookupService {
	return &LookupService{
		repository: repository,
	}
}

// FindByID returns the principal with the given identifier if it satisfies
// every constraint in filters. Returns ErrPrincipalNotFound when the
// identifier does not exist or the filters exclude it.
func (s *LookupService) FindByID(ctx context.Context, id uuid.UUID, filters principal.FilterSet) (principal.Principal, error) {
	p, err := s.repository.GetPrincipalByID(ctx, id)
	if err != nil {
		return principal.Principal{}, fmt.Errorf("principal lookup by id: %w", err)
	}
	if !filters.Matches(p) {
		slog.Debug("Principal excluded by filters", "id", id)
		return principal.Principal{}, ErrPrincipalNotFound
	}
	return p, nil
}

// FindByUsername returns the principal with the exact username if it
// satisfies every constraint in filters. A username matching more than one
// record is a data integrity violation and surfaces as ErrAmbiguousMatch.
func (s *LookupService) FindByUsername(ctx context.Context, username string, filters principal.FilterSet) (principal.Principal, error) {
	candidates, err := s.repository.FindPrincipalsByUsername(ctx, username)
	if err != nil {
		return principal.Principal{}, fmt.Errorf("principal lookup by username: %w", err)
	}
	if len(candidates) == 0 {
		return principal.Principal{}, ErrPrincipalNotFound
	}
	if len(candidates) > 1 {
		slog.Error("Multiple principals found with same username", "username", username, "count", len(candidates))
		return principal.Principal{}, fmt.Errorf("username %q: %w", username, ErrAmbiguousMatch)
	}
	if !filters.Matches(candidates[0]) {
		slog.Debug("Principal excluded by filters", "username", username)
		return principal.Principal{}, ErrPrincipalNotFound
	}
	return candidates[0], nil
}
