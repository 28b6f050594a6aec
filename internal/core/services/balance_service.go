package services

import (
	"log"
	"time"

	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/core/domain"
)

// BalancePeriod is the quota period after which seeded caps are restored.
const BalancePeriod = 182 * 24 * time.Hour // six months

// BalanceService owns the per-student leave quota ledger.
type BalanceService struct {
	balances *store.BalanceStore
}

// NewBalanceService creates a new balance service
func NewBalanceService(balances *store.BalanceStore) *BalanceService {
	return &BalanceService{balances: balances}
}

// Get returns a student's ledger.
func (s *BalanceService) Get(studentID string) (*domain.LeaveBalance, error) {
	b, ok := s.balances.Get(studentID)
	if !ok {
		return nil, domain.ErrBalanceNotFound
	}
	return &b, nil
}

// All returns every ledger.
func (s *BalanceService) All() []domain.LeaveBalance {
	return s.balances.All()
}

// Deduct consumes days from the counter matching the leave type, clamped at
// zero. A student without a ledger is skipped silently — submission must not
// fail over missing quota bookkeeping. Consumed days are never restored on
// rejection: forfeiture is the current business policy.
func (s *BalanceService) Deduct(studentID string, leaveType domain.LeaveType, days int) {
	b, ok := s.balances.Get(studentID)
	if !ok {
		log.Printf("⚠️ No balance ledger for student %s, deduction skipped", studentID)
		return
	}

	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}

	switch leaveType {
	case domain.LeavePersonal:
		b.PersonalLeaves = clamp(b.PersonalLeaves - days)
	case domain.LeaveMedical:
		b.MedicalLeaves = clamp(b.MedicalLeaves - days)
	case domain.LeaveAcademic:
		b.AcademicLeaves = clamp(b.AcademicLeaves - days)
	}
	s.balances.Set(b)
}

// UpdateBalanceInput patches individual ledger counters.
type UpdateBalanceInput struct {
	PersonalLeaves *int `json:"personalLeaves" validate:"omitempty,min=0"`
	MedicalLeaves  *int `json:"medicalLeaves" validate:"omitempty,min=0"`
	AcademicLeaves *int `json:"academicLeaves" validate:"omitempty,min=0"`
}

// Set patches a student's ledger, creating it at seeded caps first if absent.
func (s *BalanceService) Set(studentID string, input *UpdateBalanceInput) (*domain.LeaveBalance, error) {
	b, ok := s.balances.Get(studentID)
	if !ok {
		b = domain.LeaveBalance{
			StudentID:      studentID,
			PersonalLeaves: domain.DefaultPersonalLeaves,
			MedicalLeaves:  domain.DefaultMedicalLeaves,
			AcademicLeaves: domain.DefaultAcademicLeaves,
			LastReset:      time.Now(),
		}
	}

	if input.PersonalLeaves != nil {
		b.PersonalLeaves = *input.PersonalLeaves
	}
	if input.MedicalLeaves != nil {
		b.MedicalLeaves = *input.MedicalLeaves
	}
	if input.AcademicLeaves != nil {
		b.AcademicLeaves = *input.AcademicLeaves
	}
	s.balances.Set(b)
	return &b, nil
}

// ResetExpired restores the seeded caps on every ledger whose period has
// lapsed. Returns the number of ledgers reset.
func (s *BalanceService) ResetExpired(now time.Time) int {
	count := 0
	for _, b := range s.balances.All() {
		if now.Sub(b.LastReset) < BalancePeriod {
			continue
		}
		b.PersonalLeaves = domain.DefaultPersonalLeaves
		b.MedicalLeaves = domain.DefaultMedicalLeaves
		b.AcademicLeaves = domain.DefaultAcademicLeaves
		b.LastReset = now
		s.balances.Set(b)
		count++
	}
	return count
}
