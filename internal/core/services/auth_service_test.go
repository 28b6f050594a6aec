package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phd-timeoff/internal/adapters/remote"
	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/config"
	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/pkg/jwt"
	"phd-timeoff/internal/pkg/password"
)

func newAuthEnv(t *testing.T) *AuthService {
	t.Helper()

	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", AccessTokenMins: 15},
	}

	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)

	client := remote.NewClient("http://127.0.0.1:0", "")
	users := store.NewUserStore(client, []domain.User{
		{ID: "u1", Name: "Scholar", Email: "s1@univ.edu", Password: hash, Role: domain.RoleStudent, IsActive: true},
		{ID: "u2", Name: "Gone", Email: "gone@univ.edu", Password: hash, Role: domain.RoleStudent, IsActive: false},
	})
	users.Load(context.Background())
	require.False(t, users.Available())

	return NewAuthService(client, users)
}

func TestLoginLocalFallback(t *testing.T) {
	auth := newAuthEnv(t)

	result, err := auth.Login(context.Background(), &LoginInput{
		Email: "s1@univ.edu", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, store.SourceLocal, result.Source)
	assert.Equal(t, "u1", result.User.ID)

	claims, err := jwt.ValidateAccessToken(result.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "student", claims.Role)
}

func TestLoginRejections(t *testing.T) {
	auth := newAuthEnv(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input LoginInput
		want  error
	}{
		{"wrong password", LoginInput{Email: "s1@univ.edu", Password: "nope"}, domain.ErrInvalidCredentials},
		{"unknown email", LoginInput{Email: "ghost@univ.edu", Password: "correct-horse"}, domain.ErrInvalidCredentials},
		{"inactive account", LoginInput{Email: "gone@univ.edu", Password: "correct-horse"}, domain.ErrUserInactive},
		{"malformed email", LoginInput{Email: "not-an-email", Password: "x"}, domain.ErrInvalidInput},
		{"missing password", LoginInput{Email: "s1@univ.edu"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Login(ctx, &tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCurrentUser(t *testing.T) {
	auth := newAuthEnv(t)

	user, err := auth.CurrentUser("u1")
	require.NoError(t, err)
	assert.Equal(t, "s1@univ.edu", user.Email)

	_, err = auth.CurrentUser("missing")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
