package actas

import "github.com/tendant/simple-actas/pkg/principal"

type Option func(*Service)

// WithPolicy replaces the act-as authorization predicate.
func WithPolicy(policy Policy) Option {
	return func(s *Service) {
		s.policy = policy
	}
}

// WithFilters sets the filter constraints applied to both the actor and
// the target lookup. The set is fixed for the lifetime of the service.
func WithFilters(filters principal.FilterSet) Option {
	return func(s *Service) {
		s.filters = filters
	}
}

// WithVerifier replaces the credential verifier.
func WithVerifier(verifier CredentialVerifier) Option {
	return func(s *Service) {
		s.verifier = verifier
	}
}
