package principal

import (
	"fmt"
	"strings"
)

// AttributeSource exposes named attributes for filter evaluation. Any type
// can be filtered as long as it can answer attribute lookups by name.
type AttributeSource interface {
	Attribute(name string) (any, bool)
}

// Op is a comparison operator applied by a Filter.
type Op string

const (
	OpEquals     Op = "equals"
	OpNotEquals  Op = "not_equals"
	OpStartsWith Op = "starts_with"
	OpContains   Op = "contains"
)

// Filter is a single field/operator/value constraint.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// FilterSet is a conjunction of filters. An empty set matches everything.
type FilterSet []Filter

// ParseField splits a "field__op" key into its field name and operator.
// A bare field name means equality, e.g. "privileged" or
// "username__starts_with".
func ParseField(key string) (string, Op, error) {
	field, op, found := strings.Cut(key, "__")
	if !found {
		return key, OpEquals, nil
	}
	switch Op(op) {
	case OpEquals, OpNotEquals, OpStartsWith, OpContains:
		return field, Op(op), nil
	default:
		return "", "", fmt.Errorf("unsupported filter operator: %s", op)
	}
}

// NewFilterSet builds a FilterSet from a map of "field__op" keys to values.
func NewFilterSet(constraints map[string]any) (FilterSet, error) {
	if len(constraints) == 0 {
		return nil, nil
	}
	filters := make(FilterSet, 0, len(constraints))
	for key, value := range constraints {
		field, op, err := ParseField(key)
		if err != nil {
			return nil, err
		}
		filters = append(filters, Filter{Field: field, Op: op, Value: value})
	}
	return filters, nil
}

// Matches reports whether the source satisfies this single constraint.
// A missing attribute never matches (except under not_equals).
func (f Filter) Matches(src AttributeSource) bool {
	attr, ok := src.Attribute(f.Field)
	switch f.Op {
	case OpEquals:
		return ok && attrEquals(attr, f.Value)
	case OpNotEquals:
		return !ok || !attrEquals(attr, f.Value)
	case OpStartsWith:
		s, v, strOk := stringPair(attr, f.Value)
		return ok && strOk && strings.HasPrefix(s, v)
	case OpContains:
		s, v, strOk := stringPair(attr, f.Value)
		return ok && strOk && strings.Contains(s, v)
	default:
		return false
	}
}

// Matches reports whether the source satisfies every constraint in the set.
func (fs FilterSet) Matches(src AttributeSource) bool {
	for _, f := range fs {
		if !f.Matches(src) {
			return false
		}
	}
	return true
}

func attrEquals(attr, value any) bool {
	if a, v, ok := stringPair(attr, value); ok {
		return a == v
	}
	if a, ok := attr.(bool); ok {
		if v, ok := value.(bool); ok {
			return a == v
		}
	}
	// Numeric values may arrive as different widths depending on the
	// store, compare their canonical text form.
	return fmt.Sprint(attr) == fmt.Sprint(value)
}

func stringPair(attr, value any) (string, string, bool) {
	a, aok := attr.(string)
	v, vok := value.(string)
	return a, v, aok && vok
}
