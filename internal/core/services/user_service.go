package services

import (
	"context"
	"fmt"
	"log"

	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/pkg/password"
	"phd-timeoff/internal/pkg/validate"
)

// UserService handles user management and the role invariants: only
// students carry a roll number, guide and TA, and those references must
// point at active faculty users.
type UserService struct {
	users *store.UserStore
}

// NewUserService creates a new user service
func NewUserService(users *store.UserStore) *UserService {
	return &UserService{users: users}
}

// CreateUserInput represents create user input
type CreateUserInput struct {
	Name       string      `json:"name" validate:"required"`
	Email      string      `json:"email" validate:"required,email"`
	Role       domain.Role `json:"role" validate:"required,oneof=admin faculty hod student"`
	RollNumber string      `json:"rollNumber,omitempty"`
	GuideID    string      `json:"guideId,omitempty"`
	TAID       string      `json:"taId,omitempty"`
	Password   string      `json:"password" validate:"required,min=8"`
	IsActive   *bool       `json:"isActive,omitempty"`
}

// Create adds a user after enforcing the role invariants.
func (s *UserService) Create(ctx context.Context, actor *domain.User, input *CreateUserInput) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if _, err := s.users.GetByEmail(input.Email); err == nil {
		return nil, domain.ErrUserAlreadyExists
	}

	if err := s.checkRoleInvariants(input.Role, input.RollNumber, input.GuideID, input.TAID); err != nil {
		return nil, err
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	user := domain.User{
		Name:       input.Name,
		Email:      input.Email,
		Role:       input.Role,
		RollNumber: input.RollNumber,
		GuideID:    input.GuideID,
		TAID:       input.TAID,
		Password:   hashed,
		IsActive:   isActive,
	}

	created, src, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ User created: %s (%s, via %s)", created.Email, created.Role, src)
	return created, nil
}

// UpdateUserInput represents update user input; nil fields are left as-is
type UpdateUserInput struct {
	Name       *string      `json:"name,omitempty"`
	Email      *string      `json:"email,omitempty" validate:"omitempty,email"`
	Role       *domain.Role `json:"role,omitempty" validate:"omitempty,oneof=admin faculty hod student"`
	RollNumber *string      `json:"rollNumber,omitempty"`
	GuideID    *string      `json:"guideId,omitempty"`
	TAID       *string      `json:"taId,omitempty"`
	Password   *string      `json:"password,omitempty" validate:"omitempty,min=8"`
	IsActive   *bool        `json:"isActive,omitempty"`
}

// Update patches a user, re-checking the role invariants on the result.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id string, input *UpdateUserInput) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	user, err := s.users.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		if existing, err := s.users.GetByEmail(*input.Email); err == nil && existing.ID != id {
			return nil, domain.ErrUserAlreadyExists
		}
		user.Email = *input.Email
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.RollNumber != nil {
		user.RollNumber = *input.RollNumber
	}
	if input.GuideID != nil {
		user.GuideID = *input.GuideID
	}
	if input.TAID != nil {
		user.TAID = *input.TAID
	}
	if input.Password != nil {
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.checkRoleInvariants(user.Role, user.RollNumber, user.GuideID, user.TAID); err != nil {
		return nil, err
	}

	updated, src, err := s.users.Update(ctx, *user)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ User updated: %s (via %s)", updated.Email, src)
	return updated, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	src, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	log.Printf("✅ User %s deleted (via %s)", id, src)
	return nil
}

// Get returns a user by id.
func (s *UserService) Get(id string) (*domain.User, error) {
	return s.users.Get(id)
}

// List returns every user.
func (s *UserService) List() []domain.User {
	return s.users.All()
}

// checkRoleInvariants enforces who may carry student-only fields and that
// guide/TA references resolve to active faculty.
func (s *UserService) checkRoleInvariants(role domain.Role, rollNumber, guideID, taID string) error {
	if role != domain.RoleStudent {
		if rollNumber != "" || guideID != "" || taID != "" {
			return fmt.Errorf("%w: roll number, guide and TA apply to students only", domain.ErrInvalidInput)
		}
		return nil
	}

	for _, facultyID := range []string{guideID, taID} {
		if facultyID == "" {
			continue
		}
		faculty, err := s.users.Get(facultyID)
		if err != nil {
			return domain.ErrNotAFaculty
		}
		if faculty.Role != domain.RoleFaculty || !faculty.IsActive {
			return domain.ErrNotAFaculty
		}
	}
	return nil
}
