package principal

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantField string
		wantOp    Op
		wantErr   bool
	}{
		{name: "BareFieldIsEquals", key: "privileged", wantField: "privileged", wantOp: OpEquals},
		{name: "StartsWith", key: "username__starts_with", wantField: "username", wantOp: OpStartsWith},
		{name: "NotEquals", key: "name__not_equals", wantField: "name", wantOp: OpNotEquals},
		{name: "Contains", key: "username__contains", wantField: "username", wantOp: OpContains},
		{name: "UnknownOperator", key: "username__regex", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, op, err := ParseField(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOp, op)
		})
	}
}

func TestFilterSetMatches(t *testing.T) {
	customer := Principal{
		ID:         uuid.New(),
		Username:   "customer",
		Privileged: false,
		Attrs:      map[string]any{"tenant": "acme"},
	}
	superuser := Principal{
		ID:         uuid.New(),
		Username:   "superuser",
		Privileged: true,
	}

	t.Run("EmptySetMatchesEverything", func(t *testing.T) {
		assert.True(t, FilterSet{}.Matches(customer))
		assert.True(t, FilterSet(nil).Matches(superuser))
	})

	t.Run("PrivilegedFlag", func(t *testing.T) {
		fs := FilterSet{{Field: "privileged", Op: OpEquals, Value: true}}
		assert.False(t, fs.Matches(customer))
		assert.True(t, fs.Matches(superuser))
	})

	t.Run("UsernameStartsWith", func(t *testing.T) {
		fs := FilterSet{{Field: "username", Op: OpStartsWith, Value: "c"}}
		assert.True(t, fs.Matches(customer))
		assert.False(t, fs.Matches(superuser))
	})

	t.Run("ConjunctionRequiresAll", func(t *testing.T) {
		fs := FilterSet{
			{Field: "username", Op: OpStartsWith, Value: "c"},
			{Field: "privileged", Op: OpEquals, Value: true},
		}
		assert.False(t, fs.Matches(customer))
		assert.False(t, fs.Matches(superuser))
	})

	t.Run("CustomAttribute", func(t *testing.T) {
		fs := FilterSet{{Field: "tenant", Op: OpEquals, Value: "acme"}}
		assert.True(t, fs.Matches(customer))
		assert.False(t, fs.Matches(superuser), "missing attribute must not match")
	})

	t.Run("NotEquals", func(t *testing.T) {
		fs := FilterSet{{Field: "username", Op: OpNotEquals, Value: "customer"}}
		assert.False(t, fs.Matches(customer))
		assert.True(t, fs.Matches(superuser))
	})

	t.Run("StartsWithOnNonString", func(t *testing.T) {
		fs := FilterSet{{Field: "privileged", Op: OpStartsWith, Value: "t"}}
		assert.False(t, fs.Matches(superuser))
	})
}

func TestNewFilterSet(t *testing.T) {
	fs, err := NewFilterSet(map[string]any{
		"username__starts_with": "c",
		"privileged":            false,
	})
	require.NoError(t, err)
	assert.Len(t, fs, 2)

	_, err = NewFilterSet(map[string]any{"username__regex": ".*"})
	assert.Error(t, err)

	fs, err = NewFilterSet(nil)
	require.NoError(t, err)
	assert.Nil(t, fs)
}

func TestPrincipalDisplayName(t *testing.T) {
	p := Principal{Username: "user"}
	assert.Equal(t, "user", p.DisplayName())

	p.Name = "Some User"
	assert.Equal(t, "Some User", p.DisplayName())
}
