package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phd-timeoff/internal/adapters/remote"
	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/pkg/password"
)

func newUserEnv(t *testing.T) (*UserService, *domain.User) {
	t.Helper()

	client := remote.NewClient("http://127.0.0.1:0", "")
	users := store.NewUserStore(client, []domain.User{
		{ID: "a1", Name: "Admin", Email: "admin@univ.edu", Role: domain.RoleAdmin, IsActive: true},
		{ID: "g1", Name: "Guide", Email: "guide@univ.edu", Role: domain.RoleFaculty, IsActive: true},
		{ID: "g2", Name: "Retired Guide", Email: "retired@univ.edu", Role: domain.RoleFaculty, IsActive: false},
		{ID: "h1", Name: "Head", Email: "hod@univ.edu", Role: domain.RoleHOD, IsActive: true},
	})
	users.Load(context.Background())
	require.False(t, users.Available())

	svc := NewUserService(users)
	admin, err := svc.Get("a1")
	require.NoError(t, err)
	return svc, admin
}

func TestCreateUser(t *testing.T) {
	svc, admin := newUserEnv(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, &CreateUserInput{
		Name: "Scholar", Email: "s1@univ.edu", Role: domain.RoleStudent,
		RollNumber: "PHD2024007", GuideID: "g1", Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.True(t, password.Verify("secret-pass", created.Password))

	// duplicate email
	_, err = svc.Create(ctx, admin, &CreateUserInput{
		Name: "Clone", Email: "s1@univ.edu", Role: domain.RoleStudent, Password: "secret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestCreateUserInvariants(t *testing.T) {
	svc, admin := newUserEnv(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateUserInput
		want  error
	}{
		{
			"faculty with roll number",
			CreateUserInput{Name: "F", Email: "f@univ.edu", Role: domain.RoleFaculty, RollNumber: "PHD1", Password: "secret-pass"},
			domain.ErrInvalidInput,
		},
		{
			"guide is not faculty",
			CreateUserInput{Name: "S", Email: "s2@univ.edu", Role: domain.RoleStudent, GuideID: "h1", Password: "secret-pass"},
			domain.ErrNotAFaculty,
		},
		{
			"guide is inactive",
			CreateUserInput{Name: "S", Email: "s3@univ.edu", Role: domain.RoleStudent, GuideID: "g2", Password: "secret-pass"},
			domain.ErrNotAFaculty,
		},
		{
			"ta does not exist",
			CreateUserInput{Name: "S", Email: "s4@univ.edu", Role: domain.RoleStudent, TAID: "ghost", Password: "secret-pass"},
			domain.ErrNotAFaculty,
		},
		{
			"short password",
			CreateUserInput{Name: "S", Email: "s5@univ.edu", Role: domain.RoleStudent, Password: "short"},
			domain.ErrInvalidInput,
		},
		{
			"unknown role",
			CreateUserInput{Name: "S", Email: "s6@univ.edu", Role: "dean", Password: "secret-pass"},
			domain.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, admin, &tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// non-admin actors cannot manage users at all
	hod, err := svc.Get("h1")
	require.NoError(t, err)
	_, err = svc.Create(ctx, hod, &CreateUserInput{
		Name: "S", Email: "s7@univ.edu", Role: domain.RoleStudent, Password: "secret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateUser(t *testing.T) {
	svc, admin := newUserEnv(t)
	ctx := context.Background()

	name := "Renamed Guide"
	updated, err := svc.Update(ctx, admin, "g1", &UpdateUserInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Guide", updated.Name)

	// patching a non-student with a roll number trips the invariant
	roll := "PHD9"
	_, err = svc.Update(ctx, admin, "g1", &UpdateUserInput{RollNumber: &roll})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// stealing another user's email is a conflict
	email := "hod@univ.edu"
	_, err = svc.Update(ctx, admin, "g1", &UpdateUserInput{Email: &email})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	_, err = svc.Update(ctx, admin, "missing", &UpdateUserInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc, admin := newUserEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, admin, "g2"))
	_, err := svc.Get("g2")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, admin, "g2"), domain.ErrUserNotFound)

	hod, err := svc.Get("h1")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(ctx, hod, "g1"), domain.ErrForbidden)
}
