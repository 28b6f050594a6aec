package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phd-timeoff/internal/adapters/remote"
	"phd-timeoff/internal/core/domain"
)

func newLocalUserStore(t *testing.T, seed ...domain.User) *UserStore {
	t.Helper()
	store := NewUserStore(remote.NewClient("http://127.0.0.1:0", ""), seed)
	store.Load(context.Background())
	require.False(t, store.Available())
	return store
}

func TestUserStoreLookups(t *testing.T) {
	store := newLocalUserStore(t,
		domain.User{ID: "u1", Name: "Guide", Email: "guide@univ.edu", Role: domain.RoleFaculty, IsActive: true},
		domain.User{ID: "u2", Name: "Head", Email: "hod@univ.edu", Role: domain.RoleHOD, IsActive: true},
		domain.User{ID: "u3", Name: "Scholar", Email: "s1@univ.edu", Role: domain.RoleStudent, IsActive: true},
	)

	user, err := store.Get("u2")
	require.NoError(t, err)
	assert.Equal(t, "Head", user.Name)

	user, err = store.GetByEmail("s1@univ.edu")
	require.NoError(t, err)
	assert.Equal(t, "u3", user.ID)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = store.GetByEmail("nobody@univ.edu")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	faculty := store.ByRole(domain.RoleFaculty)
	require.Len(t, faculty, 1)
	assert.Equal(t, "u1", faculty[0].ID)
	assert.Empty(t, store.ByRole(domain.RoleAdmin))
}

func TestUserStoreLocalWrites(t *testing.T) {
	ctx := context.Background()
	store := newLocalUserStore(t)

	created, src, err := store.Create(ctx, domain.User{
		Name: "New Faculty", Email: "new@univ.edu", Role: domain.RoleFaculty, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, src)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.CreatedAt)

	created.Name = "Renamed Faculty"
	updated, src, err := store.Update(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, src)
	assert.Equal(t, "Renamed Faculty", updated.Name)

	_, _, err = store.Update(ctx, domain.User{ID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	src, err = store.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, src)
	_, err = store.Get(created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
