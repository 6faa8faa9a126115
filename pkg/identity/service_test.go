package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-actas/pkg/principal"
)

func seedThreeUsers(t *testing.T) (*LookupService, map[string]principal.Principal) {
	t.Helper()
	repo := NewInMemoryIdentityRepository()

	users := map[string]principal.Principal{
		"staff":     repo.CreatePrincipal("staff", []byte("hash"), false),
		"superuser": repo.CreatePrincipal("superuser", []byte("hash"), true),
		"customer":  repo.CreatePrincipal("customer", []byte("hash"), false),
	}
	return NewLookupService(repo), users
}

func TestFindByUsername(t *testing.T) {
	lookup, users := seedThreeUsers(t)
	ctx := context.Background()

	t.Run("NoFiltersFindsEveryone", func(t *testing.T) {
		for name, want := range users {
			got, err := lookup.FindByUsername(ctx, name, nil)
			require.NoError(t, err)
			assert.Equal(t, want.ID, got.ID)
		}
	})

	t.Run("PrivilegedFilterExcludesCustomer", func(t *testing.T) {
		filters := principal.FilterSet{{Field: "privileged", Op: principal.OpEquals, Value: true}}

		_, err := lookup.FindByUsername(ctx, "customer", filters)
		assert.ErrorIs(t, err, ErrPrincipalNotFound)

		got, err := lookup.FindByUsername(ctx, "superuser", filters)
		require.NoError(t, err)
		assert.Equal(t, users["superuser"].ID, got.ID)
	})

	t.Run("StartsWithFilter", func(t *testing.T) {
		filters := principal.FilterSet{{Field: "username", Op: principal.OpStartsWith, Value: "c"}}

		got, err := lookup.FindByUsername(ctx, "customer", filters)
		require.NoError(t, err)
		assert.Equal(t, users["customer"].ID, got.ID)

		_, err = lookup.FindByUsername(ctx, "superuser", filters)
		assert.ErrorIs(t, err, ErrPrincipalNotFound)
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		_, err := lookup.FindByUsername(ctx, "ghost", nil)
		assert.ErrorIs(t, err, ErrPrincipalNotFound)
	})

	t.Run("DuplicateUsernameFailsLoudly", func(t *testing.T) {
		repo := NewInMemoryIdentityRepository()
		repo.CreatePrincipal("twin", []byte("hash"), false)
		repo.CreatePrincipal("twin", []byte("hash"), true)

		_, err := NewLookupService(repo).FindByUsername(ctx, "twin", nil)
		assert.ErrorIs(t, err, ErrAmbiguousMatch)
	})
}

func TestFindByID(t *testing.T) {
	lookup, users := seedThreeUsers(t)
	ctx := context.Background()

	t.Run("NoFilters", func(t *testing.T) {
		got, err := lookup.FindByID(ctx, users["staff"].ID, nil)
		require.NoError(t, err)
		assert.Equal(t, "staff", got.Username)
	})

	t.Run("FiltersApplyToGetByID", func(t *testing.T) {
		filters := principal.FilterSet{{Field: "privileged", Op: principal.OpEquals, Value: true}}

		_, err := lookup.FindByID(ctx, users["customer"].ID, filters)
		assert.ErrorIs(t, err, ErrPrincipalNotFound)

		got, err := lookup.FindByID(ctx, users["superuser"].ID, filters)
		require.NoError(t, err)
		assert.Equal(t, "superuser", got.Username)
	})

	t.Run("UnknownID", func(t *testing.T) {
		_, err := lookup.FindByID(ctx, uuid.New(), nil)
		assert.ErrorIs(t, err, ErrPrincipalNotFound)
	})
}

func TestNewIdentityRepository(t *testing.T) {
	repo, err := NewIdentityRepository("memory", RepositoryConfig{})
	require.NoError(t, err)
	assert.IsType(t, &InMemoryIdentityRepository{}, repo)

	_, err = NewIdentityRepository("postgres", RepositoryConfig{})
	assert.Error(t, err, "postgres requires a pool")

	_, err = NewIdentityRepository("etcd", RepositoryConfig{})
	assert.Error(t, err)
}
