package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"phd-timeoff/internal/adapters/remote"
	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/config"
	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/pkg/jwt"
	"phd-timeoff/internal/pkg/password"
	"phd-timeoff/internal/pkg/validate"
)

// AuthService handles login. Credentials are checked against the upstream
// auth endpoint first; when the upstream is unavailable the locally loaded
// user set is used as a fallback with bcrypt verification.
type AuthService struct {
	remote *remote.Client
	users  *store.UserStore
}

// NewAuthService creates a new auth service
func NewAuthService(client *remote.Client, users *store.UserStore) *AuthService {
	return &AuthService{remote: client, users: users}
}

// LoginInput represents login credentials
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the authenticated user and the issued access token.
type LoginResult struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"accessToken"`
	Source      store.Source `json:"source"`
}

// Login authenticates a user and issues a JWT access token.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	user, src, err := s.authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	token, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		string(user.Role),
		config.AppConfig.JWT.Secret,
		config.AppConfig.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Login: %s (%s, via %s)", user.Email, user.Role, src)
	return &LoginResult{User: user, AccessToken: token, Source: src}, nil
}

// authenticate tries the upstream first, then the local user set. An
// explicit upstream rejection is final; only unavailability falls through.
func (s *AuthService) authenticate(ctx context.Context, email, pwd string) (*domain.User, store.Source, error) {
	if s.users.Available() {
		user, err := s.remote.Login(ctx, email, pwd)
		if err == nil {
			return user, store.SourceRemote, nil
		}
		if !errors.Is(err, remote.ErrUnavailable) {
			return nil, "", domain.ErrInvalidCredentials
		}
		log.Printf("⚠️ Auth: upstream unavailable, falling back to local users")
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if !password.Verify(pwd, user.Password) {
		return nil, "", domain.ErrInvalidCredentials
	}
	return user, store.SourceLocal, nil
}

// CurrentUser resolves the actor behind a validated token's user id.
func (s *AuthService) CurrentUser(userID string) (*domain.User, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
