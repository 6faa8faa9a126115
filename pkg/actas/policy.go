package actas

import "github.com/tendant/simple-actas/pkg/principal"

// Policy decides whether an authenticated actor may act as a target.
// Implementations must be pure predicates with no side effects.
type Policy interface {
	CanActAs(actor, target principal.Principal) bool
}

// PolicyFunc adapts a plain function to the Policy interface.
type PolicyFunc func(actor, target principal.Principal) bool

// CanActAs implements Policy.
func (f PolicyFunc) CanActAs(actor, target principal.Principal) bool {
	return f(actor, target)
}

// Unrestricted allows any authenticated actor to act as any resolvable
// target. This is the base behavior when no restriction is layered on.
var Unrestricted Policy = PolicyFunc(func(actor, target principal.Principal) bool {
	return true
})

// PrivilegedOnly allows privileged actors to act as non-privileged
// targets. Acting as another privileged account stays denied so a
// compromised admin password cannot pivot into other admin accounts.
var PrivilegedOnly Policy = PolicyFunc(func(actor, target principal.Principal) bool {
	return actor.Privileged && !target.Privileged
})

// NewPolicy returns the named built-in policy. Useful for wiring policies
// from configuration.
func NewPolicy(name string) (Policy, bool) {
	switch name {
	case "unrestricted":
		return Unrestricted, true
	case "privileged", "privileged_only":
		return PrivilegedOnly, true
	default:
		return nil, false
	}
}
