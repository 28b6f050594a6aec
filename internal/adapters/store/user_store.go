package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"phd-timeoff/internal/adapters/remote"
	"phd-timeoff/internal/core/domain"
)

// UserStore holds the user collection.
type UserStore struct {
	mu        sync.RWMutex
	remote    *remote.Client
	available bool
	users     []domain.User
	seed      []domain.User
}

// NewUserStore creates a user store with a local seed fallback.
func NewUserStore(client *remote.Client, seed []domain.User) *UserStore {
	return &UserStore{remote: client, seed: seed}
}

// Load performs the read-through for the user collection.
func (s *UserStore) Load(ctx context.Context) {
	users, err := s.remote.FetchUsers(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("⚠️ Users: upstream unavailable, using local seed (%v)", err)
		s.available = false
		s.users = append([]domain.User(nil), s.seed...)
		return
	}
	s.available = true
	s.users = users
	log.Printf("✅ Users: loaded %d records from upstream", len(users))
}

// Available reports whether the collection is upstream-backed.
func (s *UserStore) Available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.available
}

// All returns a copy of the current collection.
func (s *UserStore) All() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User(nil), s.users...)
}

// Get returns the user with the given id.
func (s *UserStore) Get(id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail returns the user with the given email.
func (s *UserStore) GetByEmail(email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Email == email {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ByRole returns all users carrying the given role.
func (s *UserStore) ByRole(role domain.Role) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// Create persists a new user.
func (s *UserStore) Create(ctx context.Context, user domain.User) (*domain.User, Source, error) {
	if s.Available() {
		if err := s.remote.CreateUser(ctx, user); err == nil {
			s.reload(ctx)
			if created, err := s.GetByEmail(user.Email); err == nil {
				return created, SourceRemote, nil
			}
			return &user, SourceRemote, nil
		}
		log.Printf("⚠️ Users: upstream write failed, applying locally")
	}

	user.ID = uuid.NewString()
	now := time.Now()
	user.CreatedAt = &now

	s.mu.Lock()
	s.users = append(s.users, user)
	s.mu.Unlock()
	return &user, SourceLocal, nil
}

// Update replaces the stored user with the given record.
func (s *UserStore) Update(ctx context.Context, user domain.User) (*domain.User, Source, error) {
	if s.Available() {
		if err := s.remote.UpdateUser(ctx, user); err == nil {
			s.reload(ctx)
			return &user, SourceRemote, nil
		}
		log.Printf("⚠️ Users: upstream write failed, applying locally")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i] = user
			return &user, SourceLocal, nil
		}
	}
	return nil, SourceLocal, domain.ErrUserNotFound
}

// Delete removes a user.
func (s *UserStore) Delete(ctx context.Context, id string) (Source, error) {
	if s.Available() {
		if err := s.remote.DeleteUser(ctx, id); err == nil {
			s.reload(ctx)
			return SourceRemote, nil
		}
		log.Printf("⚠️ Users: upstream write failed, applying locally")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return SourceLocal, nil
		}
	}
	return SourceLocal, domain.ErrUserNotFound
}

func (s *UserStore) reload(ctx context.Context) {
	users, err := s.remote.FetchUsers(ctx)
	if err != nil {
		log.Printf("⚠️ Users: reload after write failed, keeping previous snapshot")
		return
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
}
