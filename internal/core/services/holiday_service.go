package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/pkg/dateutil"
	"phd-timeoff/internal/pkg/validate"
)

// HolidayService manages the institute holiday calendar.
type HolidayService struct {
	holidays *store.HolidayStore
}

// NewHolidayService creates a new holiday service
func NewHolidayService(holidays *store.HolidayStore) *HolidayService {
	return &HolidayService{holidays: holidays}
}

// HolidayInput represents holiday create/update input
type HolidayInput struct {
	Name string             `json:"name" validate:"required"`
	Date string             `json:"date" validate:"required,datetime=2006-01-02"`
	Type domain.HolidayType `json:"type" validate:"required,oneof=national university department"`
}

// Create adds a holiday to the calendar.
func (s *HolidayService) Create(ctx context.Context, actor *domain.User, input *HolidayInput) (*domain.Holiday, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	created, src, err := s.holidays.Create(ctx, domain.Holiday{
		Name: input.Name,
		Date: input.Date,
		Type: input.Type,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Holiday created: %s on %s (via %s)", created.Name, created.Date, src)
	return created, nil
}

// Update replaces a holiday's fields.
func (s *HolidayService) Update(ctx context.Context, actor *domain.User, id string, input *HolidayInput) (*domain.Holiday, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	holiday, err := s.holidays.Get(id)
	if err != nil {
		return nil, err
	}
	holiday.Name = input.Name
	holiday.Date = input.Date
	holiday.Type = input.Type

	updated, src, err := s.holidays.Update(ctx, *holiday)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Holiday updated: %s (via %s)", updated.Name, src)
	return updated, nil
}

// Delete removes a holiday.
func (s *HolidayService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	src, err := s.holidays.Delete(ctx, id)
	if err != nil {
		return err
	}
	log.Printf("✅ Holiday %s deleted (via %s)", id, src)
	return nil
}

// List returns the full calendar.
func (s *HolidayService) List() []domain.Holiday {
	return s.holidays.All()
}

// Upcoming returns holidays on or after today, or the given day when set.
func (s *HolidayService) Upcoming(from string) []domain.Holiday {
	if from == "" {
		from = dateutil.Today()
	}
	if _, err := time.Parse(dateutil.DayFormat, from); err != nil {
		from = dateutil.Today()
	}

	var upcoming []domain.Holiday
	for _, h := range s.holidays.All() {
		if h.Date >= from {
			upcoming = append(upcoming, h)
		}
	}
	return upcoming
}
