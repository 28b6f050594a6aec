package services

import (
	"fmt"
	"strings"
	"time"

	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/pkg/dateutil"
)

// ReportService produces the one-way export artifacts: the plain-text Dean
// AP document and the monthly JSON report. Pure formatting over the current
// collections — nothing here touches lifecycle state.
type ReportService struct {
	leaves *store.LeaveStore
	users  *store.UserStore
}

// NewReportService creates a new report service
func NewReportService(leaves *store.LeaveStore, users *store.UserStore) *ReportService {
	return &ReportService{leaves: leaves, users: users}
}

// GenerateDeanDocument renders the Dean AP approval document for an
// escalated leave. Admin only; the leave must be awaiting the Dean document.
// Side-effect free: generation does not advance the workflow.
func (s *ReportService) GenerateDeanDocument(actor *domain.User, leaveID string) (string, error) {
	if actor.Role != domain.RoleAdmin {
		return "", domain.ErrForbidden
	}

	leave, err := s.leaves.Get(leaveID)
	if err != nil {
		return "", err
	}
	if leave.Status != domain.StatusDeanApprovalPending {
		return "", domain.ErrInvalidTransition
	}
	student, err := s.users.Get(leave.StudentID)
	if err != nil {
		return "", domain.ErrUserNotFound
	}

	formatStamp := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return dateutil.FormatDisplay(*t)
	}

	var b strings.Builder
	b.WriteString("DEAN AP APPROVAL DOCUMENT\n\n")
	fmt.Fprintf(&b, "Student Name: %s\n", student.Name)
	fmt.Fprintf(&b, "Roll Number: %s\n", student.RollNumber)
	fmt.Fprintf(&b, "Leave Type: %s\n", strings.ToUpper(string(leave.Type)))
	fmt.Fprintf(&b, "Duration: %s to %s (%d days)\n", leave.StartDate, leave.EndDate, leave.DaysCount)
	fmt.Fprintf(&b, "Reason: %s\n\n", leave.Reason)
	b.WriteString("This academic leave application has been reviewed and approved by:\n")
	fmt.Fprintf(&b, "- Guide: %s\n", formatStamp(leave.GuideApprovalDate))
	fmt.Fprintf(&b, "- HOD: %s\n\n", formatStamp(leave.HODApprovalDate))
	b.WriteString("DEAN AP SIGNATURE REQUIRED\n\n")
	fmt.Fprintf(&b, "Date: %s\n", dateutil.FormatDisplay(time.Now()))

	return b.String(), nil
}

// DeanDocumentFilename names the generated document download.
func (s *ReportService) DeanDocumentFilename(leaveID string) string {
	leave, err := s.leaves.Get(leaveID)
	if err != nil {
		return fmt.Sprintf("dean-approval-%s.txt", leaveID)
	}
	rollNumber := "unknown"
	if student, err := s.users.Get(leave.StudentID); err == nil && student.RollNumber != "" {
		rollNumber = student.RollNumber
	}
	return fmt.Sprintf("dean-approval-%s-%s.txt", rollNumber, leaveID)
}

// LeaveSummary is one row of the monthly report
type LeaveSummary struct {
	StudentName string             `json:"studentName"`
	Type        domain.LeaveType   `json:"type"`
	Days        int                `json:"days"`
	Status      domain.LeaveStatus `json:"status"`
	Dates       string             `json:"dates"`
}

// MonthlyReport is the JSON export for a calendar month
type MonthlyReport struct {
	Month          string         `json:"month"`
	Year           int            `json:"year"`
	TotalLeaves    int            `json:"totalLeaves"`
	ApprovedLeaves int            `json:"approvedLeaves"`
	PendingLeaves  int            `json:"pendingLeaves"`
	Students       int            `json:"students"`
	Leaves         []LeaveSummary `json:"leaves"`
}

// GenerateMonthlyReport aggregates the leaves whose range overlaps the given
// month. Admin only.
func (s *ReportService) GenerateMonthlyReport(actor *domain.User, month time.Month, year int) (*MonthlyReport, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if month < time.January || month > time.December {
		return nil, domain.ErrInvalidInput
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	first := monthStart.Format(dateutil.DayFormat)
	last := monthEnd.Format(dateutil.DayFormat)

	report := &MonthlyReport{
		Month:    month.String(),
		Year:     year,
		Students: len(s.users.ByRole(domain.RoleStudent)),
		Leaves:   []LeaveSummary{},
	}

	for _, leave := range s.leaves.All() {
		// overlap: starts no later than the month ends, ends no earlier
		// than it starts (lexical compare on calendar-day strings)
		if leave.StartDate > last || leave.EndDate < first {
			continue
		}

		report.TotalLeaves++
		l := leave
		if l.IsApproved() || l.Status == domain.StatusDeanApprovalPending {
			report.ApprovedLeaves++
		}
		if l.Status == domain.StatusPending || l.Status == domain.StatusGuideApproved {
			report.PendingLeaves++
		}

		studentName := "Unknown"
		if student, err := s.users.Get(leave.StudentID); err == nil {
			studentName = student.Name
		}
		report.Leaves = append(report.Leaves, LeaveSummary{
			StudentName: studentName,
			Type:        leave.Type,
			Days:        leave.DaysCount,
			Status:      leave.Status,
			Dates:       fmt.Sprintf("%s to %s", leave.StartDate, leave.EndDate),
		})
	}

	return report, nil
}
