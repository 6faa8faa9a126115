// Package identity resolves principals from the identity store.
//
// The package provides:
//   - Repository pattern for store abstraction (in-memory, PostgreSQL)
//   - Filtered lookup by primary key or username with arbitrary
//     field/operator constraints
//   - Loud failure on broken uniqueness invariants (ErrAmbiguousMatch)
//
// # Basic Usage
//
//	import "github.com/tendant/simple-actas/pkg/identity"
//
//	repo := identity.NewInMemoryIdentityRepository()
//	lookup := identity.NewLookupService(repo)
//
//	filters := principal.FilterSet{
//		{Field: "privileged", Op: principal.OpEquals, Value: true},
//	}
//	p, err := lookup.FindByUsername(ctx, "admin", filters)
//	if err != nil {
//		// identity.ErrPrincipalNotFound: no match or excluded by filters
//		// identity.ErrAmbiguousMatch: duplicate usernames in the store
//	}
//
// Lookups are pure reads. Filters are evaluated against the principal's
// attributes through the principal.AttributeSource capability, so new
// fields and operators need no changes in this package.
package identity
