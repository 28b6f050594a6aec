package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phd-timeoff/internal/core/domain"
)

func TestGenerateDeanDocument(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()
	reports := NewReportService(env.stores.Leaves, env.stores.Users)

	leave := env.submit(t, &SubmitLeaveInput{
		Type: domain.LeaveAcademic, StartDate: "2024-05-01", EndDate: "2024-05-20", Reason: "archival research",
	})

	// only dean-pending leaves have a document to generate
	_, err := reports.GenerateDeanDocument(env.admin, leave.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = env.leaves.GuideApprove(ctx, env.guide, leave.ID)
	require.NoError(t, err)
	_, err = env.leaves.HODApprove(ctx, env.hod, leave.ID, &HODApproveInput{ApprovalType: domain.ApprovalPartialPaid})
	require.NoError(t, err)

	_, err = reports.GenerateDeanDocument(env.hod, leave.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	doc, err := reports.GenerateDeanDocument(env.admin, leave.ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, "DEAN AP APPROVAL DOCUMENT\n\n"))
	assert.Contains(t, doc, "Student Name: Student\n")
	assert.Contains(t, doc, "Roll Number: PHD2024001\n")
	assert.Contains(t, doc, "Leave Type: ACADEMIC\n")
	assert.Contains(t, doc, "Duration: 2024-05-01 to 2024-05-20 (20 days)\n")
	assert.Contains(t, doc, "Reason: archival research\n")
	assert.Contains(t, doc, "DEAN AP SIGNATURE REQUIRED\n")

	// both approval stamps render as dates, not placeholders
	today := time.Now().Format("02 Jan 2006")
	assert.Contains(t, doc, fmt.Sprintf("- Guide: %s\n", today))
	assert.Contains(t, doc, fmt.Sprintf("- HOD: %s\n", today))

	// generation does not advance the workflow
	current, err := env.leaves.Get(env.admin, leave.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeanApprovalPending, current.Status)

	assert.Equal(t, "dean-approval-PHD2024001-"+leave.ID+".txt", reports.DeanDocumentFilename(leave.ID))
}

func TestGenerateMonthlyReport(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()
	reports := NewReportService(env.stores.Leaves, env.stores.Users)

	// inside March, approved end to end
	march := env.submit(t, &SubmitLeaveInput{
		Type: domain.LeavePersonal, StartDate: "2024-03-04", EndDate: "2024-03-06", Reason: "x",
	})
	_, err := env.leaves.GuideApprove(ctx, env.guide, march.ID)
	require.NoError(t, err)
	_, err = env.leaves.HODApprove(ctx, env.hod, march.ID, &HODApproveInput{})
	require.NoError(t, err)

	// straddles the February/March boundary, still pending
	env.submit(t, &SubmitLeaveInput{
		Type: domain.LeavePersonal, StartDate: "2024-02-27", EndDate: "2024-03-02", Reason: "x",
	})

	// entirely in June, must not appear
	env.submit(t, &SubmitLeaveInput{
		Type: domain.LeaveAcademic, StartDate: "2024-06-10", EndDate: "2024-06-12", Reason: "x",
	})

	_, err = reports.GenerateMonthlyReport(env.student, time.March, 2024)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	report, err := reports.GenerateMonthlyReport(env.admin, time.March, 2024)
	require.NoError(t, err)

	assert.Equal(t, "March", report.Month)
	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, 2, report.TotalLeaves)
	assert.Equal(t, 1, report.ApprovedLeaves)
	assert.Equal(t, 1, report.PendingLeaves)
	assert.Equal(t, 1, report.Students)
	require.Len(t, report.Leaves, 2)
	for _, row := range report.Leaves {
		assert.Equal(t, "Student", row.StudentName)
	}
}
