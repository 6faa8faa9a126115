package actas

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tendant/simple-actas/pkg/identity"
	"github.com/tendant/simple-actas/pkg/principal"
)

// SepChar separates the actor and target usernames in a combined credential.
const SepChar = "/"

// ErrNoMatch is the uniform failure result of Authenticate. Actor not
// found, bad password, target not found and policy denial all surface as
// this single error so callers cannot tell which stage failed.
var ErrNoMatch = errors.New("authentication failed")

// IdentityLookup resolves a principal by exact username intersected with a
// filter constraint set.
type IdentityLookup interface {
	FindByUsername(ctx context.Context, username string, filters principal.FilterSet) (principal.Principal, error)
}

// CredentialVerifier checks a plaintext password against a principal's
// stored credential.
type CredentialVerifier interface {
	Verify(ctx context.Context, p principal.Principal, password string) (bool, error)
}

// Service authenticates combined "actor/target" credentials. It performs
// at most two lookups and one password verification per call and holds no
// mutable state; instances are safe for concurrent use.
type Service struct {
	lookup   IdentityLookup
	verifier CredentialVerifier
	policy   Policy
	filters  principal.FilterSet
}

// NewService creates an act-as authenticator. By default it verifies
// passwords with bcrypt, applies no filter constraints, and allows any
// authenticated actor to act as any resolvable target. Production
// deployments should layer a restrictive policy via WithPolicy.
func NewService(lookup IdentityLookup, opts ...Option) *Service {
	s := &Service{
		lookup:   lookup,
		verifier: NewHasherVerifier(&BcryptV1Hasher{}),
		policy:   Unrestricted,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SplitActAs splits a combined credential into actor and target usernames.
// Only the first separator counts: everything after it, further separators
// included, is the target. Without a separator the whole string is the
// actor and actAs is false.
func SplitActAs(credential string) (actor, target string, actAs bool) {
	return strings.Cut(credential, SepChar)
}

// Authenticate resolves the credential string and verifies the actor's
// password. Plain credentials return the actor; act-as credentials return
// the TARGET principal after the policy check passes. The target's
// password is never consulted.
//
// Authenticate has no side effects: it never fires login notifications or
// writes to the store. Emitting a post-auth notice is the outer login
// flow's job, using the returned principal.
func (s *Service) Authenticate(ctx context.Context, credential, password string) (principal.Principal, error) {
	actorName, targetName, actAs := SplitActAs(credential)

	actor, err := s.lookup.FindByUsername(ctx, actorName, s.filters)
	if err != nil {
		if errors.Is(err, identity.ErrAmbiguousMatch) {
			return principal.Principal{}, fmt.Errorf("actor lookup: %w", err)
		}
		slog.Debug("Actor not found", "username", actorName)
		return principal.Principal{}, ErrNoMatch
	}

	valid, err := s.verifier.Verify(ctx, actor, password)
	if err != nil {
		slog.Debug("Password verification errored", "username", actorName, "err", err)
		return principal.Principal{}, ErrNoMatch
	}
	if !valid {
		slog.Debug("Password mismatch", "username", actorName)
		return principal.Principal{}, ErrNoMatch
	}

	if !actAs {
		return actor, nil
	}

	target, err := s.lookup.FindByUsername(ctx, targetName, s.filters)
	if err != nil {
		if errors.Is(err, identity.ErrAmbiguousMatch) {
			return principal.Principal{}, fmt.Errorf("target lookup: %w", err)
		}
		slog.Debug("Target not found", "username", targetName)
		return principal.Principal{}, ErrNoMatch
	}

	if !s.policy.CanActAs(actor, target) {
		slog.Debug("Act-as denied by policy", "actor", actorName, "target", targetName)
		return principal.Principal{}, ErrNoMatch
	}

	return target, nil
}
