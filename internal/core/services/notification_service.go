package services

import (
	"fmt"
	"log"

	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/core/domain"
)

// NotificationService is the dispatcher: it fans approval events out to the
// next responsible role. Fire-and-forget — a notification that finds no
// recipient is logged and dropped, never an error to the caller.
type NotificationService struct {
	notifications *store.NotificationStore
	users         *store.UserStore
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifications *store.NotificationStore, users *store.UserStore) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
	}
}

// Notify appends a notification to the log.
func (s *NotificationService) Notify(userID string, ntype domain.NotificationType, message string) {
	s.notifications.Append(domain.Notification{
		UserID:  userID,
		Type:    ntype,
		Message: message,
	})
}

// ForUser returns a user's notifications, optionally unread only.
func (s *NotificationService) ForUser(userID string, unreadOnly bool) []domain.Notification {
	return s.notifications.ForUser(userID, unreadOnly)
}

// MarkRead flips the read flag on a notification.
func (s *NotificationService) MarkRead(id string) error {
	return s.notifications.MarkRead(id)
}

// NotifyRole fans a message out to every user holding the given role.
func (s *NotificationService) NotifyRole(role domain.Role, ntype domain.NotificationType, message string) {
	for _, u := range s.users.ByRole(role) {
		s.Notify(u.ID, ntype, message)
	}
}

// NotifyLeaveSubmitted tells the student's guide a new application awaits.
func (s *NotificationService) NotifyLeaveSubmitted(guideID string, student *domain.User) {
	s.Notify(guideID, domain.NotifyLeaveRequest,
		fmt.Sprintf("New leave application from %s requires your approval", student.Name))
}

// NotifyGuideApproved tells the HOD a guide-approved application awaits.
func (s *NotificationService) NotifyGuideApproved(student *domain.User) {
	hods := s.users.ByRole(domain.RoleHOD)
	if len(hods) == 0 {
		log.Printf("⚠️ No HOD on record, guide-approval notification dropped")
		return
	}
	for _, hod := range hods {
		s.Notify(hod.ID, domain.NotifyLeaveRequest,
			fmt.Sprintf("Leave application from %s approved by guide and needs your approval", student.Name))
	}
}

// NotifyDeanDocumentNeeded tells every admin to generate the Dean AP
// document. The message reflects the HOD's paid/unpaid decision.
func (s *NotificationService) NotifyDeanDocumentNeeded(student *domain.User, approvalType domain.ApprovalType) {
	var paidDesc string
	switch approvalType {
	case domain.ApprovalPartialPaid:
		paidDesc = fmt.Sprintf("%d days paid, rest unpaid", domain.PartialPaidCapDays)
	case domain.ApprovalFullUnpaid:
		paidDesc = "fully unpaid"
	default:
		paidDesc = "fully paid"
	}

	admins := s.users.ByRole(domain.RoleAdmin)
	if len(admins) == 0 {
		log.Printf("⚠️ No admin on record, Dean-document notification dropped")
		return
	}
	for _, admin := range admins {
		s.Notify(admin.ID, domain.NotifyLeaveRequest,
			fmt.Sprintf("Academic leave from %s requires Dean AP document generation (%s)", student.Name, paidDesc))
	}
}

// NotifyLeaveApproved tells the student their application cleared the workflow.
func (s *NotificationService) NotifyLeaveApproved(studentID string) {
	s.Notify(studentID, domain.NotifyLeaveApproved, "Your leave application has been approved")
}

// NotifyLeaveRejected tells the student their application was rejected.
func (s *NotificationService) NotifyLeaveRejected(studentID string) {
	s.Notify(studentID, domain.NotifyLeaveRejected, "Your leave application has been rejected")
}
