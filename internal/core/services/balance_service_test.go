package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/core/domain"
)

func intPtr(i int) *int { return &i }

func newBalanceService(seed ...domain.LeaveBalance) *BalanceService {
	return NewBalanceService(store.NewBalanceStore(seed))
}

func TestDeductClampsAtZero(t *testing.T) {
	svc := newBalanceService(domain.LeaveBalance{
		StudentID: "s1", PersonalLeaves: 15, MedicalLeaves: 5, AcademicLeaves: 25, LastReset: time.Now(),
	})

	svc.Deduct("s1", domain.LeavePersonal, 10)
	svc.Deduct("s1", domain.LeaveMedical, 8) // over quota
	svc.Deduct("s1", domain.LeaveAcademic, 25)

	b, err := svc.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, 5, b.PersonalLeaves)
	assert.Equal(t, 0, b.MedicalLeaves)
	assert.Equal(t, 0, b.AcademicLeaves)

	// going further stays at zero
	svc.Deduct("s1", domain.LeaveMedical, 3)
	b, err = svc.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, 0, b.MedicalLeaves)
}

func TestDeductWithoutLedgerIsSkipped(t *testing.T) {
	svc := newBalanceService()

	// must not panic and must not create a ledger
	svc.Deduct("ghost", domain.LeavePersonal, 3)

	_, err := svc.Get("ghost")
	assert.ErrorIs(t, err, domain.ErrBalanceNotFound)
	assert.Empty(t, svc.All())
}

func TestSetCreatesAtCapsThenPatches(t *testing.T) {
	svc := newBalanceService()

	b, err := svc.Set("s1", &UpdateBalanceInput{MedicalLeaves: intPtr(2)})
	require.NoError(t, err)

	// untouched counters start at the seeded caps
	assert.Equal(t, domain.DefaultPersonalLeaves, b.PersonalLeaves)
	assert.Equal(t, 2, b.MedicalLeaves)
	assert.Equal(t, domain.DefaultAcademicLeaves, b.AcademicLeaves)

	b, err = svc.Set("s1", &UpdateBalanceInput{PersonalLeaves: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, b.PersonalLeaves)
	assert.Equal(t, 2, b.MedicalLeaves)
}

func TestResetExpired(t *testing.T) {
	now := time.Now()
	svc := newBalanceService(
		domain.LeaveBalance{StudentID: "old", PersonalLeaves: 1, MedicalLeaves: 0, AcademicLeaves: 2, LastReset: now.Add(-BalancePeriod - time.Hour)},
		domain.LeaveBalance{StudentID: "fresh", PersonalLeaves: 9, MedicalLeaves: 3, AcademicLeaves: 20, LastReset: now},
	)

	assert.Equal(t, 1, svc.ResetExpired(now))

	old, err := svc.Get("old")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPersonalLeaves, old.PersonalLeaves)
	assert.Equal(t, domain.DefaultMedicalLeaves, old.MedicalLeaves)
	assert.Equal(t, domain.DefaultAcademicLeaves, old.AcademicLeaves)
	assert.WithinDuration(t, now, old.LastReset, time.Second)

	fresh, err := svc.Get("fresh")
	require.NoError(t, err)
	assert.Equal(t, 9, fresh.PersonalLeaves)

	// second sweep finds nothing to do
	assert.Equal(t, 0, svc.ResetExpired(now))
}
