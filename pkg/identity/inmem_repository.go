package identity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-actas/pkg/principal"
)

// InMemoryIdentityRepository implements IdentityRepository using in-memory
// storage. Useful for development, demos and tests.
type InMemoryIdentityRepository struct {
	mu                   sync.RWMutex
	principals           map[uuid.UUID]principal.Principal
	principalsByUsername map[string][]uuid.UUID
}

// NewInMemoryIdentityRepository creates a new in-memory identity repository.
func NewInMemoryIdentityRepository() *InMemoryIdentityRepository {
	return &InMemoryIdentityRepository{
		principals:           make(map[uuid.UUID]principal.Principal),
		principalsByUsername: make(map[string][]uuid.UUID),
	}
}

// GetPrincipalByID returns a principal by ID.
func (r *InMemoryIdentityRepository) GetPrincipalByID(ctx context.Context, id uuid.UUID) (principal.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.principals[id]
	if !ok {
		return principal.Principal{}, ErrPrincipalNotFound
	}
	return p, nil
}

// FindPrincipalsByUsername returns every principal with the exact username.
// Duplicates are possible when seeded that way; uniqueness is enforced by
// the lookup service, not silently here.
func (r *InMemoryIdentityRepository) FindPrincipalsByUsername(ctx context.Context, username string) ([]principal.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.principalsByUsername[username]
	principals := make([]principal.Principal, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.principals[id]; ok {
			principals = append(principals, p)
		}
	}
	return principals, nil
}

// SeedPrincipal adds a principal directly (for testing/initialization).
func (r *InMemoryIdentityRepository) SeedPrincipal(p principal.Principal) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.principals[p.ID] = p
	r.principalsByUsername[p.Username] = append(r.principalsByUsername[p.Username], p.ID)
}

// CreatePrincipal creates a new principal (helper for testing/initialization).
func (r *InMemoryIdentityRepository) CreatePrincipal(username string, password []byte, privileged bool) principal.Principal {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	p := principal.Principal{
		ID:         uuid.New(),
		Username:   username,
		Password:   password,
		Privileged: privileged,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	r.principals[p.ID] = p
	r.principalsByUsername[username] = append(r.principalsByUsername[username], p.ID)

	return p
}
