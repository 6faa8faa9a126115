// Package actas implements act-as (impersonation) authentication.
//
// A combined credential of the form "actor/target" lets the actor log in
// as the target using the actor's own password, subject to a pluggable
// authorization policy. A credential without the separator degenerates to
// plain password authentication.
//
// # Overview
//
// The package provides:
//   - Credential splitting on the first "/" (the remainder is the whole
//     target username, further separators included)
//   - Actor password verification through a CredentialVerifier; the
//     target's password is never consulted
//   - Pluggable act-as policies (Unrestricted, PrivilegedOnly, or any
//     custom predicate via PolicyFunc)
//   - A single uniform failure value, ErrNoMatch, for every failure stage
//     so callers cannot enumerate accounts or probe policies
//   - Password hashing (bcrypt, versioned) shared with the outer flow
//
// # Basic Usage
//
//	import "github.com/tendant/simple-actas/pkg/actas"
//
//	lookup := identity.NewLookupService(repo)
//	service := actas.NewService(lookup,
//		actas.WithPolicy(actas.PrivilegedOnly),
//	)
//
//	// Plain login
//	p, err := service.Authenticate(ctx, "user", "user password")
//
//	// Act-as login: admin's password, user comes back
//	p, err = service.Authenticate(ctx, "admin/user", "admin password")
//
// # Custom Policies
//
//	service := actas.NewService(lookup,
//		actas.WithPolicy(actas.PolicyFunc(func(actor, target principal.Principal) bool {
//			return len(actor.Username) <= 3
//		})),
//	)
//
// Authenticate performs reads only. Post-authentication side effects such
// as the "logged in" notice belong to the caller and must use the returned
// principal, which is the target in the act-as case.
//
// # Related Packages
//
//   - pkg/identity - Filtered principal lookup
//   - pkg/loginflow - Outer login flow, notifications and tokens
package actas
