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

// LeaveStore holds the leave collection.
type LeaveStore struct {
	mu        sync.RWMutex
	remote    *remote.Client
	available bool
	leaves    []domain.Leave
	seed      []domain.Leave
}

// NewLeaveStore creates a leave store with a local seed fallback.
func NewLeaveStore(client *remote.Client, seed []domain.Leave) *LeaveStore {
	return &LeaveStore{remote: client, seed: seed}
}

// Load performs the read-through: upstream fetch on success, seed on failure.
// The availability decision made here holds for the rest of the session.
func (s *LeaveStore) Load(ctx context.Context) {
	leaves, err := s.remote.FetchLeaves(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("⚠️ Leaves: upstream unavailable, using local seed (%v)", err)
		s.available = false
		s.leaves = append([]domain.Leave(nil), s.seed...)
		return
	}
	s.available = true
	s.leaves = leaves
	log.Printf("✅ Leaves: loaded %d records from upstream", len(leaves))
}

// Available reports whether the collection is upstream-backed.
func (s *LeaveStore) Available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.available
}

// All returns a copy of the current collection.
func (s *LeaveStore) All() []domain.Leave {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Leave(nil), s.leaves...)
}

// Get returns the leave with the given id.
func (s *LeaveStore) Get(id string) (*domain.Leave, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.leaves {
		if s.leaves[i].ID == id {
			leave := s.leaves[i]
			return &leave, nil
		}
	}
	return nil, domain.ErrLeaveNotFound
}

// Create persists a new leave. The upstream mints identity in remote mode;
// the local path assigns a generated id and a creation timestamp the server
// would otherwise own.
func (s *LeaveStore) Create(ctx context.Context, leave domain.Leave) (*domain.Leave, Source, error) {
	if s.Available() {
		if err := s.remote.CreateLeave(ctx, leave); err == nil {
			s.reload(ctx)
			return s.findCreated(leave), SourceRemote, nil
		}
		log.Printf("⚠️ Leaves: upstream write failed, applying locally")
	}

	leave.ID = uuid.NewString()
	leave.CreatedAt = time.Now()

	s.mu.Lock()
	s.leaves = append(s.leaves, leave)
	s.mu.Unlock()
	return &leave, SourceLocal, nil
}

// Update replaces the stored leave with the given record.
func (s *LeaveStore) Update(ctx context.Context, leave domain.Leave) (*domain.Leave, Source, error) {
	if s.Available() {
		if err := s.remote.UpdateLeave(ctx, leave); err == nil {
			s.reload(ctx)
			return &leave, SourceRemote, nil
		}
		log.Printf("⚠️ Leaves: upstream write failed, applying locally")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leaves {
		if s.leaves[i].ID == leave.ID {
			s.leaves[i] = leave
			return &leave, SourceLocal, nil
		}
	}
	return nil, SourceLocal, domain.ErrLeaveNotFound
}

// Delete removes a leave. Not part of the approval lifecycle.
func (s *LeaveStore) Delete(ctx context.Context, id string) (Source, error) {
	if s.Available() {
		if err := s.remote.DeleteLeave(ctx, id); err == nil {
			s.reload(ctx)
			return SourceRemote, nil
		}
		log.Printf("⚠️ Leaves: upstream write failed, applying locally")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leaves {
		if s.leaves[i].ID == id {
			s.leaves = append(s.leaves[:i], s.leaves[i+1:]...)
			return SourceLocal, nil
		}
	}
	return SourceLocal, domain.ErrLeaveNotFound
}

// reload re-fetches the full collection after a successful upstream write.
// A failed re-fetch keeps the previous snapshot; concurrent reloads race and
// the last one to finish wins.
func (s *LeaveStore) reload(ctx context.Context) {
	leaves, err := s.remote.FetchLeaves(ctx)
	if err != nil {
		log.Printf("⚠️ Leaves: reload after write failed, keeping previous snapshot")
		return
	}
	s.mu.Lock()
	s.leaves = leaves
	s.mu.Unlock()
}

// findCreated locates the upstream-minted record after a create + reload by
// matching the submitted fields, newest first. When the upstream shape cannot
// be matched the submitted record is echoed back without an identity, and the
// mismatch is logged so the blank id can be traced to its cause.
func (s *LeaveStore) findCreated(submitted domain.Leave) *domain.Leave {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var match *domain.Leave
	for i := range s.leaves {
		l := s.leaves[i]
		if l.StudentID == submitted.StudentID &&
			l.StartDate == submitted.StartDate &&
			l.EndDate == submitted.EndDate &&
			l.Type == submitted.Type {
			if match == nil || l.CreatedAt.After(match.CreatedAt) {
				match = &s.leaves[i]
			}
		}
	}
	if match == nil {
		log.Printf("⚠️ Leaves: created record for student %s not found after reload, echoing submission without id", submitted.StudentID)
		return &submitted
	}
	found := *match
	return &found
}
