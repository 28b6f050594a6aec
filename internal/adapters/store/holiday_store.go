package store

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"phd-timeoff/internal/adapters/remote"
	"phd-timeoff/internal/core/domain"
)

// HolidayStore holds the holiday calendar.
type HolidayStore struct {
	mu        sync.RWMutex
	remote    *remote.Client
	available bool
	holidays  []domain.Holiday
	seed      []domain.Holiday
}

// NewHolidayStore creates a holiday store with a local seed fallback.
func NewHolidayStore(client *remote.Client, seed []domain.Holiday) *HolidayStore {
	return &HolidayStore{remote: client, seed: seed}
}

// Load performs the read-through for the holiday collection.
func (s *HolidayStore) Load(ctx context.Context) {
	holidays, err := s.remote.FetchHolidays(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("⚠️ Holidays: upstream unavailable, using local seed (%v)", err)
		s.available = false
		s.holidays = append([]domain.Holiday(nil), s.seed...)
		return
	}
	s.available = true
	s.holidays = holidays
	log.Printf("✅ Holidays: loaded %d records from upstream", len(holidays))
}

// Available reports whether the collection is upstream-backed.
func (s *HolidayStore) Available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.available
}

// All returns a copy of the current collection.
func (s *HolidayStore) All() []domain.Holiday {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Holiday(nil), s.holidays...)
}

// Get returns the holiday with the given id.
func (s *HolidayStore) Get(id string) (*domain.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.holidays {
		if s.holidays[i].ID == id {
			holiday := s.holidays[i]
			return &holiday, nil
		}
	}
	return nil, domain.ErrHolidayNotFound
}

// Create persists a new holiday.
func (s *HolidayStore) Create(ctx context.Context, holiday domain.Holiday) (*domain.Holiday, Source, error) {
	if s.Available() {
		if err := s.remote.CreateHoliday(ctx, holiday); err == nil {
			s.reload(ctx)
			return &holiday, SourceRemote, nil
		}
		log.Printf("⚠️ Holidays: upstream write failed, applying locally")
	}

	holiday.ID = uuid.NewString()

	s.mu.Lock()
	s.holidays = append(s.holidays, holiday)
	s.mu.Unlock()
	return &holiday, SourceLocal, nil
}

// Update replaces the stored holiday with the given record.
func (s *HolidayStore) Update(ctx context.Context, holiday domain.Holiday) (*domain.Holiday, Source, error) {
	if s.Available() {
		if err := s.remote.UpdateHoliday(ctx, holiday); err == nil {
			s.reload(ctx)
			return &holiday, SourceRemote, nil
		}
		log.Printf("⚠️ Holidays: upstream write failed, applying locally")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.holidays {
		if s.holidays[i].ID == holiday.ID {
			s.holidays[i] = holiday
			return &holiday, SourceLocal, nil
		}
	}
	return nil, SourceLocal, domain.ErrHolidayNotFound
}

// Delete removes a holiday.
func (s *HolidayStore) Delete(ctx context.Context, id string) (Source, error) {
	if s.Available() {
		if err := s.remote.DeleteHoliday(ctx, id); err == nil {
			s.reload(ctx)
			return SourceRemote, nil
		}
		log.Printf("⚠️ Holidays: upstream write failed, applying locally")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.holidays {
		if s.holidays[i].ID == id {
			s.holidays = append(s.holidays[:i], s.holidays[i+1:]...)
			return SourceLocal, nil
		}
	}
	return SourceLocal, domain.ErrHolidayNotFound
}

func (s *HolidayStore) reload(ctx context.Context) {
	holidays, err := s.remote.FetchHolidays(ctx)
	if err != nil {
		log.Printf("⚠️ Holidays: reload after write failed, keeping previous snapshot")
		return
	}
	s.mu.Lock()
	s.holidays = holidays
	s.mu.Unlock()
}
