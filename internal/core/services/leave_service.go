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

// LeaveService is the leave lifecycle state machine. Every operation takes
// an explicit actor — there is no ambient "current user" — and each
// transition pins exactly which record fields it sets.
//
// Workflow: pending → guide_approved → hod_approved (terminal), with the
// academic escalation guide_approved → dean_approval_pending → dean_approved.
// rejected is terminal from the two reviewable states.
type LeaveService struct {
	leaves   *store.LeaveStore
	users    *store.UserStore
	balances *BalanceService
	notify   *NotificationService
}

// NewLeaveService creates a new leave service
func NewLeaveService(
	leaves *store.LeaveStore,
	users *store.UserStore,
	balances *BalanceService,
	notify *NotificationService,
) *LeaveService {
	return &LeaveService{
		leaves:   leaves,
		users:    users,
		balances: balances,
		notify:   notify,
	}
}

// SubmitLeaveInput represents a student's leave application
type SubmitLeaveInput struct {
	Type      domain.LeaveType `json:"type" validate:"required,oneof=personal medical academic"`
	StartDate string           `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string           `json:"endDate" validate:"required,datetime=2006-01-02"`
	Reason    string           `json:"reason" validate:"required"`
	Document  *string          `json:"document,omitempty"`
}

// Submit creates a leave in pending state, consumes quota and notifies the
// student's guide. All validation happens before any state is touched.
func (s *LeaveService) Submit(ctx context.Context, actor *domain.User, input *SubmitLeaveInput) (*domain.Leave, error) {
	if actor.Role != domain.RoleStudent {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	// 1. Day count: inclusive of both endpoints, must be at least one day
	daysCount, err := dateutil.DaysBetween(input.StartDate, input.EndDate)
	if err != nil || daysCount < 1 {
		return nil, domain.ErrInvalidDateRange
	}

	// 2. Medical leave needs a supporting document up front
	if input.Type == domain.LeaveMedical && (input.Document == nil || *input.Document == "") {
		return nil, domain.ErrDocumentRequired
	}

	// 3. The first approver must exist
	if actor.GuideID == "" {
		return nil, domain.ErrGuideNotFound
	}
	guide, err := s.users.Get(actor.GuideID)
	if err != nil {
		return nil, domain.ErrGuideNotFound
	}

	// 4. Dean escalation is decided at creation and never recomputed
	requiresDean := input.Type == domain.LeaveAcademic && daysCount > domain.DeanApprovalThresholdDays

	leave := domain.Leave{
		StudentID:            actor.ID,
		Type:                 input.Type,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		Reason:               input.Reason,
		Document:             input.Document,
		Status:               domain.StatusPending,
		IsPaid:               true,
		DaysCount:            daysCount,
		RequiresDeanApproval: requiresDean,
	}

	created, src, err := s.leaves.Create(ctx, leave)
	if err != nil {
		return nil, err
	}

	// 5. Quota is consumed on submission, not approval
	s.balances.Deduct(actor.ID, input.Type, daysCount)

	s.notify.NotifyLeaveSubmitted(guide.ID, actor)

	log.Printf("✅ Leave submitted: %s for %s (%d days, %s, via %s)", created.ID, actor.Name, daysCount, input.Type, src)
	return created, nil
}

// GuideApprove moves a pending leave to guide_approved. Only the student's
// guide or TA may act. Sets status and guideApprovalDate, nothing else.
func (s *LeaveService) GuideApprove(ctx context.Context, actor *domain.User, leaveID string) (*domain.Leave, error) {
	leave, student, err := s.loadWithStudent(leaveID)
	if err != nil {
		return nil, err
	}
	if leave.Status != domain.StatusPending {
		return nil, domain.ErrInvalidTransition
	}
	if !actor.IsApproverOf(student) {
		return nil, domain.ErrNotApprover
	}

	now := time.Now()
	leave.Status = domain.StatusGuideApproved
	leave.GuideApprovalDate = &now

	updated, src, err := s.leaves.Update(ctx, *leave)
	if err != nil {
		return nil, err
	}

	s.notify.NotifyGuideApproved(student)

	log.Printf("✅ Leave %s guide-approved by %s (via %s)", leaveID, actor.Name, src)
	return updated, nil
}

// HODApproveInput carries the HOD's paid/unpaid decision
type HODApproveInput struct {
	ApprovalType domain.ApprovalType `json:"approvalType" validate:"omitempty,oneof=full_paid partial_paid full_unpaid"`
}

// HODApprove resolves a guide-approved leave. The three-way approval type
// governs the paid fields; academic leaves over the threshold escalate to
// dean_approval_pending instead of completing.
func (s *LeaveService) HODApprove(ctx context.Context, actor *domain.User, leaveID string, input *HODApproveInput) (*domain.Leave, error) {
	if actor.Role != domain.RoleHOD {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	leave, student, err := s.loadWithStudent(leaveID)
	if err != nil {
		return nil, err
	}
	if leave.Status != domain.StatusGuideApproved {
		return nil, domain.ErrInvalidTransition
	}

	approvalType := input.ApprovalType
	if approvalType == "" {
		approvalType = domain.ApprovalFullPaid
	}

	isPaid, paidDays := resolvePaidFields(approvalType, leave.DaysCount)

	now := time.Now()
	leave.HODApprovalDate = &now
	leave.IsPaid = isPaid
	leave.PaidDays = &paidDays

	if leave.Type == domain.LeaveAcademic && leave.DaysCount > domain.DeanApprovalThresholdDays {
		// Escalation branch: the Dean AP document still has to be produced
		// and countersigned before the leave is final.
		leave.Status = domain.StatusDeanApprovalPending

		updated, src, err := s.leaves.Update(ctx, *leave)
		if err != nil {
			return nil, err
		}
		s.notify.NotifyDeanDocumentNeeded(student, approvalType)

		log.Printf("✅ Leave %s escalated to Dean approval (%s, via %s)", leaveID, approvalType, src)
		return updated, nil
	}

	leave.Status = domain.StatusHODApproved

	updated, src, err := s.leaves.Update(ctx, *leave)
	if err != nil {
		return nil, err
	}
	s.notify.NotifyLeaveApproved(student.ID)

	log.Printf("✅ Leave %s HOD-approved (%s, via %s)", leaveID, approvalType, src)
	return updated, nil
}

// resolvePaidFields maps the HOD's decision onto the paid fields.
// paidDays never exceeds the leave's own length: partial_paid pays the
// cap, or the whole leave when it is shorter than the cap.
func resolvePaidFields(approvalType domain.ApprovalType, daysCount int) (bool, int) {
	switch approvalType {
	case domain.ApprovalPartialPaid:
		if daysCount < domain.PartialPaidCapDays {
			return true, daysCount
		}
		return true, domain.PartialPaidCapDays
	case domain.ApprovalFullUnpaid:
		return false, 0
	default:
		return true, daysCount
	}
}

// Reject moves a reviewable leave to rejected. Authorization follows the
// matching-approver rule: the guide or TA may reject a pending leave, the
// HOD a guide-approved one. Sets status only.
func (s *LeaveService) Reject(ctx context.Context, actor *domain.User, leaveID string) (*domain.Leave, error) {
	leave, student, err := s.loadWithStudent(leaveID)
	if err != nil {
		return nil, err
	}

	switch leave.Status {
	case domain.StatusPending:
		if !actor.IsApproverOf(student) {
			return nil, domain.ErrNotApprover
		}
	case domain.StatusGuideApproved:
		if actor.Role != domain.RoleHOD {
			return nil, domain.ErrNotApprover
		}
	default:
		return nil, domain.ErrInvalidTransition
	}

	leave.Status = domain.StatusRejected

	updated, src, err := s.leaves.Update(ctx, *leave)
	if err != nil {
		return nil, err
	}

	// Consumed balance is NOT restored here; rejection forfeits the days.
	s.notify.NotifyLeaveRejected(student.ID)

	log.Printf("✅ Leave %s rejected by %s (via %s)", leaveID, actor.Name, src)
	return updated, nil
}

// CompleteDeanApproval finalizes an escalated leave once the signed Dean AP
// document is back. Admin only; the document reference is mandatory.
func (s *LeaveService) CompleteDeanApproval(ctx context.Context, actor *domain.User, leaveID, documentRef string) (*domain.Leave, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if documentRef == "" {
		return nil, domain.ErrDocumentRequired
	}

	leave, student, err := s.loadWithStudent(leaveID)
	if err != nil {
		return nil, err
	}
	if leave.Status != domain.StatusDeanApprovalPending {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	leave.Status = domain.StatusDeanApproved
	leave.DeanApprovalDate = &now
	leave.DeanApprovalDocument = &documentRef

	updated, src, err := s.leaves.Update(ctx, *leave)
	if err != nil {
		return nil, err
	}
	s.notify.NotifyLeaveApproved(student.ID)

	log.Printf("✅ Leave %s Dean-approved (via %s)", leaveID, src)
	return updated, nil
}

// Delete removes a leave record entirely. Administrative housekeeping,
// outside the approval lifecycle.
func (s *LeaveService) Delete(ctx context.Context, actor *domain.User, leaveID string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	src, err := s.leaves.Delete(ctx, leaveID)
	if err != nil {
		return err
	}
	log.Printf("✅ Leave %s deleted (via %s)", leaveID, src)
	return nil
}

// Get returns a leave visible to the actor: students see their own records,
// faculty those of their students, HOD and admin everything.
func (s *LeaveService) Get(actor *domain.User, leaveID string) (*domain.Leave, error) {
	leave, student, err := s.loadWithStudent(leaveID)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, leave, student) {
		return nil, domain.ErrForbidden
	}
	return leave, nil
}

// LeaveFilter narrows List results
type LeaveFilter struct {
	StudentID string
	Status    domain.LeaveStatus
}

// List returns the actor's role-scoped slice of the leave collection.
func (s *LeaveService) List(actor *domain.User, filter LeaveFilter) []domain.Leave {
	var out []domain.Leave
	for _, leave := range s.leaves.All() {
		if filter.StudentID != "" && leave.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && leave.Status != filter.Status {
			continue
		}
		student, err := s.users.Get(leave.StudentID)
		if err != nil {
			continue
		}
		if s.canView(actor, &leave, student) {
			out = append(out, leave)
		}
	}
	return out
}

// Available reports whether the leave collection is upstream-backed.
func (s *LeaveService) Available() bool {
	return s.leaves.Available()
}

// AllLeaves returns every leave without actor scoping, for background jobs.
func (s *LeaveService) AllLeaves() []domain.Leave {
	return s.leaves.All()
}

// Student resolves a student record by id.
func (s *LeaveService) Student(id string) (*domain.User, error) {
	return s.users.Get(id)
}

func (s *LeaveService) canView(actor *domain.User, leave *domain.Leave, student *domain.User) bool {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleHOD:
		return true
	case domain.RoleFaculty:
		return actor.IsApproverOf(student)
	case domain.RoleStudent:
		return leave.StudentID == actor.ID
	}
	return false
}

func (s *LeaveService) loadWithStudent(leaveID string) (*domain.Leave, *domain.User, error) {
	leave, err := s.leaves.Get(leaveID)
	if err != nil {
		return nil, nil, err
	}
	student, err := s.users.Get(leave.StudentID)
	if err != nil {
		return nil, nil, domain.ErrUserNotFound
	}
	return leave, student, nil
}
