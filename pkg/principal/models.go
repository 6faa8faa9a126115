package principal

import (
	"time"

	"github.com/google/uuid"
)

// Principal represents a user identity record in the identity store.
// This module only reads principals; creation and mutation belong to the
// owning identity system.
type Principal struct {
	ID         uuid.UUID      `json:"id"`
	Username   string         `json:"username"`
	Password   []byte         `json:"-"`
	Name       string         `json:"name,omitempty"`
	Privileged bool           `json:"privileged"`
	Attrs      map[string]any `json:"attrs,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// DisplayName returns the human-readable name, falling back to the username.
func (p Principal) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Username
}

// Attribute implements AttributeSource. Well-known fields are exposed by
// name; everything else falls through to the Attrs map.
func (p Principal) Attribute(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID.String(), true
	case "username":
		return p.Username, true
	case "name":
		return p.Name, true
	case "privileged":
		return p.Privileged, true
	}
	v, ok := p.Attrs[name]
	return v, ok
}
