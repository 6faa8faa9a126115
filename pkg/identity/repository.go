package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tendant/simple-actas/pkg/principal"
)

// Common errors for identity lookups
var (
	// ErrPrincipalNotFound is returned when no principal matches the key
	// or the configured filters exclude it.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrAmbiguousMatch signals a broken uniqueness invariant in the
	// store: more than one record exists for a supposedly-unique key.
	// It is never resolved by picking a record arbitrarily.
	ErrAmbiguousMatch = errors.New("multiple principals found for unique key")
)

// IdentityRepository defines the read interface over the identity store.
type IdentityRepository interface {
	// GetPrincipalByID returns the principal with the given identifier.
	GetPrincipalByID(ctx context.Context, id uuid.UUID) (principal.Principal, error)

	// FindPrincipalsByUsername returns every principal whose username
	// matches exactly. Usernames are expected to be unique; callers
	// enforce that expectation and treat multiple rows as an error.
	FindPrincipalsByUsername(ctx context.Context, username string) ([]principal.Principal, error)
}
