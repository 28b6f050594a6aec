package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phd-timeoff/internal/adapters/remote"
	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/core/domain"
)

func newHolidayEnv(t *testing.T) (*HolidayService, *domain.User, *domain.User) {
	t.Helper()

	holidays := store.NewHolidayStore(remote.NewClient("http://127.0.0.1:0", ""), []domain.Holiday{
		{ID: "hd1", Name: "Republic Day", Date: "2024-01-26", Type: domain.HolidayNational},
		{ID: "hd2", Name: "Foundation Day", Date: "2024-09-15", Type: domain.HolidayUniversity},
	})
	holidays.Load(context.Background())
	require.False(t, holidays.Available())

	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, IsActive: true}
	student := &domain.User{ID: "s1", Role: domain.RoleStudent, IsActive: true}
	return NewHolidayService(holidays), admin, student
}

func TestHolidayCRUD(t *testing.T) {
	svc, admin, student := newHolidayEnv(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin, &HolidayInput{
		Name: "Department Day", Date: "2024-11-02", Type: domain.HolidayDepartment,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, svc.List(), 3)

	updated, err := svc.Update(ctx, admin, created.ID, &HolidayInput{
		Name: "Department Day (Observed)", Date: "2024-11-04", Type: domain.HolidayDepartment,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-11-04", updated.Date)

	require.NoError(t, svc.Delete(ctx, admin, created.ID))
	assert.Len(t, svc.List(), 2)
	assert.ErrorIs(t, svc.Delete(ctx, admin, created.ID), domain.ErrHolidayNotFound)

	// only admins manage the calendar
	_, err = svc.Create(ctx, student, &HolidayInput{
		Name: "Fake", Date: "2024-12-01", Type: domain.HolidayNational,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.Update(ctx, student, "hd1", &HolidayInput{
		Name: "Fake", Date: "2024-12-01", Type: domain.HolidayNational,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, student, "hd1"), domain.ErrForbidden)
}

func TestHolidayValidation(t *testing.T) {
	svc, admin, _ := newHolidayEnv(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input HolidayInput
	}{
		{"missing name", HolidayInput{Date: "2024-12-01", Type: domain.HolidayNational}},
		{"bad date", HolidayInput{Name: "X", Date: "01-12-2024", Type: domain.HolidayNational}},
		{"unknown type", HolidayInput{Name: "X", Date: "2024-12-01", Type: "regional"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, admin, &tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpcomingHolidays(t *testing.T) {
	svc, _, _ := newHolidayEnv(t)

	upcoming := svc.Upcoming("2024-06-01")
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Foundation Day", upcoming[0].Name)

	// malformed cursor falls back to today; both seeds are in the past
	assert.Empty(t, svc.Upcoming("June 1st"))
	assert.Len(t, svc.Upcoming("2024-01-01"), 2)
}
