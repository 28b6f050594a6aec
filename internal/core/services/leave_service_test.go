package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phd-timeoff/internal/adapters/remote"
	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/core/domain"
)

// workflowEnv is a fully local environment: the upstream client points at an
// unreachable address, so every collection falls back to its seed.
type workflowEnv struct {
	stores        *store.Set
	leaves        *LeaveService
	balances      *BalanceService
	notifications *NotificationService

	guide, ta, outsider, hod, admin, student *domain.User
}

func newWorkflowEnv(t *testing.T) *workflowEnv {
	t.Helper()

	users := []domain.User{
		{ID: "a1", Name: "Admin", Email: "admin@test.edu", Role: domain.RoleAdmin, IsActive: true},
		{ID: "h1", Name: "HOD", Email: "hod@test.edu", Role: domain.RoleHOD, IsActive: true},
		{ID: "g1", Name: "Guide", Email: "guide@test.edu", Role: domain.RoleFaculty, IsActive: true},
		{ID: "t1", Name: "TA", Email: "ta@test.edu", Role: domain.RoleFaculty, IsActive: true},
		{ID: "f9", Name: "Outsider", Email: "outsider@test.edu", Role: domain.RoleFaculty, IsActive: true},
		{ID: "s1", Name: "Student", Email: "student@test.edu", Role: domain.RoleStudent, RollNumber: "PHD2024001", GuideID: "g1", TAID: "t1", IsActive: true},
	}
	balances := []domain.LeaveBalance{
		{StudentID: "s1", PersonalLeaves: 15, MedicalLeaves: 5, AcademicLeaves: 25, LastReset: time.Now()},
	}

	client := remote.NewClient("http://127.0.0.1:0", "")
	stores := store.NewSet(client, users, nil, balances, nil)
	stores.Load(context.Background())

	notificationService := NewNotificationService(stores.Notifications, stores.Users)
	balanceService := NewBalanceService(stores.Balances)
	leaveService := NewLeaveService(stores.Leaves, stores.Users, balanceService, notificationService)

	env := &workflowEnv{
		stores:        stores,
		leaves:        leaveService,
		balances:      balanceService,
		notifications: notificationService,
	}
	for i := range users {
		switch users[i].ID {
		case "a1":
			env.admin = &users[i]
		case "h1":
			env.hod = &users[i]
		case "g1":
			env.guide = &users[i]
		case "t1":
			env.ta = &users[i]
		case "f9":
			env.outsider = &users[i]
		case "s1":
			env.student = &users[i]
		}
	}
	return env
}

func (e *workflowEnv) submit(t *testing.T, input *SubmitLeaveInput) *domain.Leave {
	t.Helper()
	leave, err := e.leaves.Submit(context.Background(), e.student, input)
	require.NoError(t, err)
	return leave
}

func strPtr(s string) *string { return &s }

func TestSubmitLeave(t *testing.T) {
	env := newWorkflowEnv(t)

	leave := env.submit(t, &SubmitLeaveInput{
		Type:      domain.LeavePersonal,
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
		Reason:    "family function",
	})

	assert.Equal(t, domain.StatusPending, leave.Status)
	assert.Equal(t, 3, leave.DaysCount)
	assert.True(t, leave.IsPaid)
	assert.False(t, leave.RequiresDeanApproval)
	assert.NotEmpty(t, leave.ID)

	// quota consumed on submission
	balance, err := env.balances.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, 12, balance.PersonalLeaves)

	// guide notified
	notifications := env.notifications.ForUser("g1", true)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotifyLeaveRequest, notifications[0].Type)
}

func TestSubmitLeaveValidation(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   *domain.User
		input   *SubmitLeaveInput
		wantErr error
	}{
		{
			name:    "faculty cannot submit",
			actor:   env.guide,
			input:   &SubmitLeaveInput{Type: domain.LeavePersonal, StartDate: "2024-03-01", EndDate: "2024-03-02", Reason: "x"},
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "unknown leave type",
			actor:   env.student,
			input:   &SubmitLeaveInput{Type: "sabbatical", StartDate: "2024-03-01", EndDate: "2024-03-02", Reason: "x"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "malformed date",
			actor:   env.student,
			input:   &SubmitLeaveInput{Type: domain.LeavePersonal, StartDate: "01/03/2024", EndDate: "2024-03-02", Reason: "x"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "missing reason",
			actor:   env.student,
			input:   &SubmitLeaveInput{Type: domain.LeavePersonal, StartDate: "2024-03-01", EndDate: "2024-03-02"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "medical without document",
			actor:   env.student,
			input:   &SubmitLeaveInput{Type: domain.LeaveMedical, StartDate: "2024-03-01", EndDate: "2024-03-02", Reason: "fever"},
			wantErr: domain.ErrDocumentRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.leaves.Submit(ctx, tt.actor, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmitLeaveWithoutGuide(t *testing.T) {
	env := newWorkflowEnv(t)
	orphan := &domain.User{ID: "s9", Name: "Orphan", Role: domain.RoleStudent, IsActive: true}

	_, err := env.leaves.Submit(context.Background(), orphan, &SubmitLeaveInput{
		Type: domain.LeavePersonal, StartDate: "2024-03-01", EndDate: "2024-03-02", Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrGuideNotFound)
}

func TestSubmitMedicalClampsBalance(t *testing.T) {
	env := newWorkflowEnv(t)

	// 10 days against a 5-day medical quota clamps at zero
	leave := env.submit(t, &SubmitLeaveInput{
		Type:      domain.LeaveMedical,
		StartDate: "2024-03-01",
		EndDate:   "2024-03-10",
		Reason:    "surgery recovery",
		Document:  strPtr("medical-cert.pdf"),
	})
	assert.Equal(t, 10, leave.DaysCount)

	balance, err := env.balances.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, 0, balance.MedicalLeaves)
}

func TestDeanEscalationDecidedAtSubmission(t *testing.T) {
	env := newWorkflowEnv(t)

	at15 := env.submit(t, &SubmitLeaveInput{
		Type: domain.LeaveAcademic, StartDate: "2024-04-01", EndDate: "2024-04-15", Reason: "conference",
	})
	assert.False(t, at15.RequiresDeanApproval)

	at16 := env.submit(t, &SubmitLeaveInput{
		Type: domain.LeaveAcademic, StartDate: "2024-05-01", EndDate: "2024-05-16", Reason: "field work",
	})
	assert.True(t, at16.RequiresDeanApproval)
}

func TestGuideApprove(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	leave := env.submit(t, &SubmitLeaveInput{
		Type: domain.LeavePersonal, StartDate: "2024-03-01", EndDate: "2024-03-02", Reason: "x",
	})

	// an unrelated faculty member is not the approver
	_, err := env.leaves.GuideApprove(ctx, env.outsider, leave.ID)
	assert.ErrorIs(t, err, domain.ErrNotApprover)

	// the TA counts as an approver too
	approved, err := env.leaves.GuideApprove(ctx, env.ta, leave.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusGuideApproved, approved.Status)
	assert.NotNil(t, approved.GuideApprovalDate)
	assert.Nil(t, approved.HODApprovalDate)

	// not pending anymore
	_, err = env.leaves.GuideApprove(ctx, env.guide, leave.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// HOD got notified
	assert.NotEmpty(t, env.notifications.ForUser("h1", true))
}

func TestHODApprove(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		days         int
		leaveType    domain.LeaveType
		approvalType domain.ApprovalType
		wantStatus   domain.LeaveStatus
		wantPaid     bool
		wantPaidDays int
	}{
		{
			name: "default is full paid", days: 4, leaveType: domain.LeavePersonal,
			wantStatus: domain.StatusHODApproved, wantPaid: true, wantPaidDays: 4,
		},
		{
			name: "full unpaid", days: 3, leaveType: domain.LeavePersonal, approvalType: domain.ApprovalFullUnpaid,
			wantStatus: domain.StatusHODApproved, wantPaid: false, wantPaidDays: 0,
		},
		{
			name: "partial pay on a short leave pays the whole leave", days: 5, leaveType: domain.LeavePersonal, approvalType: domain.ApprovalPartialPaid,
			wantStatus: domain.StatusHODApproved, wantPaid: true, wantPaidDays: 5,
		},
		{
			name: "long academic escalates with partial pay", days: 20, leaveType: domain.LeaveAcademic, approvalType: domain.ApprovalPartialPaid,
			wantStatus: domain.StatusDeanApprovalPending, wantPaid: true, wantPaidDays: 15,
		},
		{
			name: "academic at threshold completes", days: 15, leaveType: domain.LeaveAcademic,
			wantStatus: domain.StatusHODApproved, wantPaid: true, wantPaidDays: 15,
		},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
			end := start.AddDate(0, 0, tt.days-1)
			leave := env.submit(t, &SubmitLeaveInput{
				Type:      tt.leaveType,
				StartDate: start.Format("2006-01-02"),
				EndDate:   end.Format("2006-01-02"),
				Reason:    "workflow test",
			})
			_, err := env.leaves.GuideApprove(ctx, env.guide, leave.ID)
			require.NoError(t, err)

			resolved, err := env.leaves.HODApprove(ctx, env.hod, leave.ID, &HODApproveInput{ApprovalType: tt.approvalType})
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resolved.Status)
			assert.Equal(t, tt.wantPaid, resolved.IsPaid)
			require.NotNil(t, resolved.PaidDays)
			assert.Equal(t, tt.wantPaidDays, *resolved.PaidDays)
			assert.LessOrEqual(t, *resolved.PaidDays, resolved.DaysCount)
			assert.NotNil(t, resolved.HODApprovalDate)
		})
	}
}

func TestHODApproveAuthorization(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	leave := env.submit(t, &SubmitLeaveInput{
		Type: domain.LeavePersonal, StartDate: "2024-03-01", EndDate: "2024-03-02", Reason: "x",
	})

	// only the HOD resolves
	_, err := env.leaves.HODApprove(ctx, env.guide, leave.ID, &HODApproveInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// and only once the guide has acted
	_, err = env.leaves.HODApprove(ctx, env.hod, leave.ID, &HODApproveInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = env.leaves.HODApprove(ctx, env.hod, leave.ID, &HODApproveInput{ApprovalType: "half_paid"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRejectMatchingApprover(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	// pending: guide may reject, HOD may not
	pending := env.submit(t, &SubmitLeaveInput{
		Type: domain.LeavePersonal, StartDate: "2024-03-01", EndDate: "2024-03-02", Reason: "x",
	})
	_, err := env.leaves.Reject(ctx, env.hod, pending.ID)
	assert.ErrorIs(t, err, domain.ErrNotApprover)

	rejected, err := env.leaves.Reject(ctx, env.guide, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)

	// terminal now
	_, err = env.leaves.Reject(ctx, env.guide, pending.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// guide-approved: HOD may reject, guide may not
	second := env.submit(t, &SubmitLeaveInput{
		Type: domain.LeavePersonal, StartDate: "2024-04-01", EndDate: "2024-04-02", Reason: "x",
	})
	_, err = env.leaves.GuideApprove(ctx, env.guide, second.ID)
	require.NoError(t, err)

	_, err = env.leaves.Reject(ctx, env.guide, second.ID)
	assert.ErrorIs(t, err, domain.ErrNotApprover)

	_, err = env.leaves.Reject(ctx, env.hod, second.ID)
	require.NoError(t, err)

	// student was told both times
	studentNotes := env.notifications.ForUser("s1", false)
	rejections := 0
	for _, n := range studentNotes {
		if n.Type == domain.NotifyLeaveRejected {
			rejections++
		}
	}
	assert.Equal(t, 2, rejections)
}

func TestRejectionForfeitsBalance(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	leave := env.submit(t, &SubmitLeaveInput{
		Type: domain.LeavePersonal, StartDate: "2024-03-01", EndDate: "2024-03-05", Reason: "x",
	})

	_, err := env.leaves.Reject(ctx, env.guide, leave.ID)
	require.NoError(t, err)

	// the five consumed days stay consumed
	balance, err := env.balances.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, 10, balance.PersonalLeaves)
}

func TestCompleteDeanApproval(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	leave := env.submit(t, &SubmitLeaveInput{
		Type: domain.LeaveAcademic, StartDate: "2024-05-01", EndDate: "2024-05-20", Reason: "field work",
	})
	_, err := env.leaves.GuideApprove(ctx, env.guide, leave.ID)
	require.NoError(t, err)

	// not escalated yet
	_, err = env.leaves.CompleteDeanApproval(ctx, env.admin, leave.ID, "dean-doc-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = env.leaves.HODApprove(ctx, env.hod, leave.ID, &HODApproveInput{})
	require.NoError(t, err)

	_, err = env.leaves.CompleteDeanApproval(ctx, env.hod, leave.ID, "dean-doc-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.leaves.CompleteDeanApproval(ctx, env.admin, leave.ID, "")
	assert.ErrorIs(t, err, domain.ErrDocumentRequired)

	final, err := env.leaves.CompleteDeanApproval(ctx, env.admin, leave.ID, "dean-doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeanApproved, final.Status)
	require.NotNil(t, final.DeanApprovalDocument)
	assert.Equal(t, "dean-doc-1", *final.DeanApprovalDocument)
	assert.NotNil(t, final.DeanApprovalDate)
	assert.True(t, final.IsApproved())
}

func TestLeaveVisibility(t *testing.T) {
	env := newWorkflowEnv(t)

	leave := env.submit(t, &SubmitLeaveInput{
		Type: domain.LeavePersonal, StartDate: "2024-03-01", EndDate: "2024-03-02", Reason: "x",
	})

	// the student's supervisors and the HOD/admin can see it
	for _, actor := range []*domain.User{env.student, env.guide, env.ta, env.hod, env.admin} {
		_, err := env.leaves.Get(actor, leave.ID)
		assert.NoError(t, err, "actor %s", actor.ID)
	}

	// an unrelated faculty member cannot
	_, err := env.leaves.Get(env.outsider, leave.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// another student cannot
	stranger := &domain.User{ID: "s2", Role: domain.RoleStudent, IsActive: true}
	_, err = env.leaves.Get(stranger, leave.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// list scoping: outsider sees nothing, guide sees the one leave
	assert.Empty(t, env.leaves.List(env.outsider, LeaveFilter{}))
	assert.Len(t, env.leaves.List(env.guide, LeaveFilter{}), 1)
	assert.Len(t, env.leaves.List(env.admin, LeaveFilter{Status: domain.StatusPending}), 1)
	assert.Empty(t, env.leaves.List(env.admin, LeaveFilter{Status: domain.StatusRejected}))

	_, err = env.leaves.Get(env.admin, "nope")
	assert.ErrorIs(t, err, domain.ErrLeaveNotFound)
}

func TestDeleteLeave(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	leave := env.submit(t, &SubmitLeaveInput{
		Type: domain.LeavePersonal, StartDate: "2024-03-01", EndDate: "2024-03-02", Reason: "x",
	})

	err := env.leaves.Delete(ctx, env.student, leave.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, env.leaves.Delete(ctx, env.admin, leave.ID))

	_, err = env.leaves.Get(env.admin, leave.ID)
	assert.ErrorIs(t, err, domain.ErrLeaveNotFound)
}
