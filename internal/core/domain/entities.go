package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFaculty Role = "faculty"
	RoleHOD     Role = "hod"
	RoleStudent Role = "student"
)

// LeaveType represents the leave taxonomy
type LeaveType string

const (
	LeavePersonal LeaveType = "personal"
	LeaveMedical  LeaveType = "medical"
	LeaveAcademic LeaveType = "academic"
)

// LeaveStatus represents a leave's position in the approval workflow
type LeaveStatus string

const (
	StatusPending             LeaveStatus = "pending"
	StatusGuideApproved       LeaveStatus = "guide_approved"
	StatusHODApproved         LeaveStatus = "hod_approved"
	StatusDeanApprovalPending LeaveStatus = "dean_approval_pending"
	StatusDeanApproved        LeaveStatus = "dean_approved"
	StatusRejected            LeaveStatus = "rejected"
)

// ApprovalType is the HOD's paid/unpaid decision
type ApprovalType string

const (
	ApprovalFullPaid    ApprovalType = "full_paid"
	ApprovalPartialPaid ApprovalType = "partial_paid"
	ApprovalFullUnpaid  ApprovalType = "full_unpaid"
)

// HolidayType classifies calendar holidays
type HolidayType string

const (
	HolidayNational   HolidayType = "national"
	HolidayUniversity HolidayType = "university"
	HolidayDepartment HolidayType = "department"
)

// NotificationType classifies notifications
type NotificationType string

const (
	NotifyLeaveRequest  NotificationType = "leave_request"
	NotifyLeaveApproved NotificationType = "leave_approved"
	NotifyLeaveRejected NotificationType = "leave_rejected"
)

// Day thresholds for escalation and special-attention routing
const (
	DeanApprovalThresholdDays = 15 // academic leaves beyond this need Dean sign-off
	PartialPaidCapDays        = 15 // partial_paid approval pays at most this many days
	PersonalAttentionDays     = 15
	MedicalAttentionDays      = 5
	AcademicAttentionDays     = 15
)

// User represents a user in the domain layer.
// Guide/TA/roll number are carried only by student-role users.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	RollNumber string     `json:"rollNumber,omitempty"`
	GuideID    string     `json:"guideId,omitempty"`
	TAID       string     `json:"taId,omitempty"`
	Password   string     `json:"password,omitempty"` // hashed; stripped from API responses via ToResponse
	IsActive   bool       `json:"isActive"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// IsApproverOf reports whether u is the guide or TA of the given student.
func (u *User) IsApproverOf(student *User) bool {
	if u.Role != RoleFaculty || student.Role != RoleStudent {
		return false
	}
	return student.GuideID == u.ID || student.TAID == u.ID
}

// UserResponse DTO (never carries the password hash)
type UserResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	RollNumber string     `json:"rollNumber,omitempty"`
	GuideID    string     `json:"guideId,omitempty"`
	TAID       string     `json:"taId,omitempty"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		RollNumber: u.RollNumber,
		GuideID:    u.GuideID,
		TAID:       u.TAID,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// Leave represents a leave application.
// Dates are calendar-day strings (YYYY-MM-DD) compared lexically; no timezone
// normalization is applied. Optional fields are pointers: each workflow
// transition pins exactly which of them it sets.
type Leave struct {
	ID                   string      `json:"id"`
	StudentID            string      `json:"studentId"`
	Type                 LeaveType   `json:"type"`
	StartDate            string      `json:"startDate"`
	EndDate              string      `json:"endDate"`
	Reason               string      `json:"reason"`
	Document             *string     `json:"document,omitempty"`
	DeanApprovalDocument *string     `json:"deanApprovalDocument,omitempty"`
	Status               LeaveStatus `json:"status"`
	GuideApprovalDate    *time.Time  `json:"guideApprovalDate,omitempty"`
	HODApprovalDate      *time.Time  `json:"hodApprovalDate,omitempty"`
	DeanApprovalDate     *time.Time  `json:"deanApprovalDate,omitempty"`
	IsPaid               bool        `json:"isPaid"`
	PaidDays             *int        `json:"paidDays,omitempty"`
	DaysCount            int         `json:"daysCount"`
	RequiresDeanApproval bool        `json:"requiresDeanApproval"`
	CreatedAt            time.Time   `json:"createdAt"`
}

// IsTerminal reports whether the leave can no longer transition.
func (l *Leave) IsTerminal() bool {
	switch l.Status {
	case StatusRejected, StatusHODApproved, StatusDeanApproved:
		return true
	}
	return false
}

// IsApproved reports whether the leave has cleared the full workflow.
func (l *Leave) IsApproved() bool {
	return l.Status == StatusHODApproved || l.Status == StatusDeanApproved
}

// CoversDate reports whether day (YYYY-MM-DD) falls inside the inclusive
// leave range. Lexical comparison matches the calendar-day format.
func (l *Leave) CoversDate(day string) bool {
	return l.StartDate <= day && l.EndDate >= day
}

// NeedsSpecialAttention flags leaves exceeding per-type day limits.
// Advisory only: it never blocks a transition, except that academic leaves
// over the threshold take the Dean-escalation branch at HOD approval.
func (l *Leave) NeedsSpecialAttention() bool {
	switch l.Type {
	case LeavePersonal:
		return l.DaysCount > PersonalAttentionDays
	case LeaveMedical:
		return l.DaysCount > MedicalAttentionDays
	case LeaveAcademic:
		return l.DaysCount > AcademicAttentionDays
	}
	return false
}

// LeaveBalance is the per-student quota ledger.
// Counters are decremented on submission and clamped at zero; a rejected
// leave's consumed balance is not returned.
type LeaveBalance struct {
	StudentID      string    `json:"studentId"`
	PersonalLeaves int       `json:"personalLeaves"`
	MedicalLeaves  int       `json:"medicalLeaves"`
	AcademicLeaves int       `json:"academicLeaves"`
	LastReset      time.Time `json:"lastReset"`
}

// Seeded balance caps per six-month period
const (
	DefaultPersonalLeaves = 15
	DefaultMedicalLeaves  = 5
	DefaultAcademicLeaves = 25
)

// Holiday represents a calendar holiday (display only, independent of leaves)
type Holiday struct {
	ID   string      `json:"id"`
	Date string      `json:"date"`
	Name string      `json:"name"`
	Type HolidayType `json:"type"`
}

// Notification is an append-only, fire-and-forget message to a user
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}
