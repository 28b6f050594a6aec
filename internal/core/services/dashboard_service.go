package services

import (
	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/pkg/dateutil"
)

// DashboardService computes the role-scoped query views. All views are pure
// projections over the current collections, recomputed on every call.
type DashboardService struct {
	leaves *store.LeaveStore
	users  *store.UserStore
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(leaves *store.LeaveStore, users *store.UserStore) *DashboardService {
	return &DashboardService{leaves: leaves, users: users}
}

// PendingForActor returns the leaves sitting in the actor's approval queue:
// pending leaves of the actor's students for faculty, guide-approved leaves
// for the HOD, escalated leaves awaiting the Dean document for admins, and
// the student's own open applications.
func (s *DashboardService) PendingForActor(actor *domain.User) []domain.Leave {
	var out []domain.Leave
	for _, leave := range s.leaves.All() {
		switch actor.Role {
		case domain.RoleFaculty:
			if leave.Status != domain.StatusPending {
				continue
			}
			student, err := s.users.Get(leave.StudentID)
			if err != nil || !actor.IsApproverOf(student) {
				continue
			}
		case domain.RoleHOD:
			if leave.Status != domain.StatusGuideApproved {
				continue
			}
		case domain.RoleAdmin:
			if leave.Status != domain.StatusDeanApprovalPending || !leave.RequiresDeanApproval {
				continue
			}
		case domain.RoleStudent:
			if leave.StudentID != actor.ID || (&leave).IsTerminal() {
				continue
			}
		default:
			continue
		}
		out = append(out, leave)
	}
	return out
}

// MyStudents returns the students the actor guides or assists.
func (s *DashboardService) MyStudents(actor *domain.User) []domain.User {
	var out []domain.User
	for _, u := range s.users.ByRole(domain.RoleStudent) {
		student := u
		if actor.IsApproverOf(&student) {
			out = append(out, u)
		}
	}
	return out
}

// StudentOnLeave pairs an approved leave with its student's identity.
type StudentOnLeave struct {
	domain.Leave
	StudentName string `json:"studentName"`
	RollNumber  string `json:"rollNumber"`
}

// OnLeaveToday returns fully approved leaves whose range covers today.
func (s *DashboardService) OnLeaveToday() []StudentOnLeave {
	today := dateutil.Today()

	var out []StudentOnLeave
	for _, leave := range s.leaves.All() {
		l := leave
		if !l.IsApproved() || !l.CoversDate(today) {
			continue
		}
		entry := StudentOnLeave{Leave: l, StudentName: "Unknown", RollNumber: "N/A"}
		if student, err := s.users.Get(l.StudentID); err == nil {
			entry.StudentName = student.Name
			entry.RollNumber = student.RollNumber
		}
		out = append(out, entry)
	}
	return out
}

// SpecialAttention returns leaves exceeding the per-type day limits.
func (s *DashboardService) SpecialAttention() []domain.Leave {
	var out []domain.Leave
	for _, leave := range s.leaves.All() {
		l := leave
		if l.NeedsSpecialAttention() {
			out = append(out, leave)
		}
	}
	return out
}

// Stats summarizes the collection for the dashboard overview cards.
type Stats struct {
	TotalLeaves      int  `json:"totalLeaves"`
	PendingApprovals int  `json:"pendingApprovals"`
	ApprovedLeaves   int  `json:"approvedLeaves"`
	SpecialAttention int  `json:"specialAttention"`
	MyStudents       int  `json:"myStudents,omitempty"`
	BackendAvailable bool `json:"backendAvailable"`
}

// StatsForActor computes the overview counters for the actor's dashboard.
// Approved counts include escalated leaves still awaiting the Dean document,
// matching how the review dashboards tally them.
func (s *DashboardService) StatsForActor(actor *domain.User) Stats {
	stats := Stats{
		PendingApprovals: len(s.PendingForActor(actor)),
		SpecialAttention: len(s.SpecialAttention()),
		BackendAvailable: s.leaves.Available(),
	}

	for _, leave := range s.leaves.All() {
		stats.TotalLeaves++
		switch leave.Status {
		case domain.StatusHODApproved, domain.StatusDeanApproved, domain.StatusDeanApprovalPending:
			stats.ApprovedLeaves++
		}
	}

	if actor.Role == domain.RoleFaculty {
		stats.MyStudents = len(s.MyStudents(actor))
	}
	return stats
}
