package services

import (
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"phd-timeoff/internal/core/domain"
)

// ============================================================
// Background jobs: daily approval reminders + balance period reset
// ============================================================

func cronEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// CronService runs the scheduled background jobs.
type CronService struct {
	cron         *cron.Cron
	leaves       *LeaveService
	balances     *BalanceService
	notification *NotificationService
}

// NewCronService creates a new cron service
func NewCronService(leaves *LeaveService, balances *BalanceService, notification *NotificationService) *CronService {
	return &CronService{
		cron:         cron.New(),
		leaves:       leaves,
		balances:     balances,
		notification: notification,
	}
}

// Start registers and launches the scheduled jobs.
func (s *CronService) Start() {
	reminderSchedule := cronEnvOrDefault("REMINDER_CRON", "30 8 * * *")
	resetSchedule := cronEnvOrDefault("BALANCE_RESET_CRON", "0 0 * * *")

	if _, err := s.cron.AddFunc(reminderSchedule, s.runPendingReminders); err != nil {
		log.Printf("❌ Cron: failed to register reminder job: %v", err)
	}
	if _, err := s.cron.AddFunc(resetSchedule, s.runBalanceReset); err != nil {
		log.Printf("❌ Cron: failed to register balance reset job: %v", err)
	}

	s.cron.Start()
	log.Printf("🚀 CronService started (reminders %q, balance reset %q)", reminderSchedule, resetSchedule)
}

// Stop gracefully stops the scheduler.
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

// runPendingReminders nudges whoever a stalled application is waiting on.
func (s *CronService) runPendingReminders() {
	var guideWaiting, hodWaiting, deanWaiting int
	for _, leave := range s.leaves.AllLeaves() {
		switch leave.Status {
		case domain.StatusPending:
			guideWaiting++
			student, err := s.leaves.Student(leave.StudentID)
			if err != nil || student.GuideID == "" {
				continue
			}
			s.notification.Notify(student.GuideID, domain.NotifyLeaveRequest,
				"Reminder: a leave application from "+student.Name+" is awaiting your approval")
		case domain.StatusGuideApproved:
			hodWaiting++
		case domain.StatusDeanApprovalPending:
			deanWaiting++
		}
	}

	if hodWaiting > 0 {
		s.notification.NotifyRole(domain.RoleHOD, domain.NotifyLeaveRequest,
			"Reminder: guide-approved leave applications are awaiting HOD review")
	}
	if deanWaiting > 0 {
		s.notification.NotifyRole(domain.RoleAdmin, domain.NotifyLeaveRequest,
			"Reminder: leave applications are awaiting Dean AP document generation")
	}

	log.Printf("⏰ Reminder sweep: %d pending, %d guide-approved, %d dean-pending", guideWaiting, hodWaiting, deanWaiting)
}

// runBalanceReset restores expired ledgers to their period allowances.
func (s *CronService) runBalanceReset() {
	reset := s.balances.ResetExpired(time.Now())
	if reset > 0 {
		log.Printf("✅ Balance reset: %d ledgers restored to period allowances", reset)
	}
}
