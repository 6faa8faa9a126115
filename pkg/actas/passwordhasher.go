package actas

import (
	"context"

	"github.com/tendant/simple-actas/pkg/principal"
)

// PasswordVersion represents the version of the password hashing algorithm
type PasswordVersion int

const (
	// PasswordV1 is the original bcrypt implementation
	PasswordV1 PasswordVersion = 1
	// PasswordV2 adds salt and uses a higher cost
	PasswordV2 PasswordVersion = 2

	// CurrentPasswordVersion is the current version used for new passwords
	CurrentPasswordVersion = PasswordV1
)

// PasswordHasher defines the interface for password hashing implementations
type PasswordHasher interface {
	// Hash hashes a password
	Hash(password string) (string, error)

	// Verify checks if the provided password matches the stored hash
	Verify(password, hashedPassword string) (bool, error)
}

// HasherVerifier adapts a PasswordHasher to the CredentialVerifier
// interface, checking passwords against the principal's stored credential.
type HasherVerifier struct {
	hasher PasswordHasher
}

// NewHasherVerifier creates a credential verifier backed by the given hasher.
func NewHasherVerifier(hasher PasswordHasher) *HasherVerifier {
	return &HasherVerifier{
		hasher: hasher,
	}
}

// Verify implements CredentialVerifier.
func (v *HasherVerifier) Verify(ctx context.Context, p principal.Principal, password string) (bool, error) {
	return v.hasher.Verify(password, string(p.Password))
}
