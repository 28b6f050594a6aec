package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"phd-timeoff/internal/core/domain"
)

// BalanceStore keeps the per-student quota ledger. The upstream backend does
// not expose balances, so this collection is always local.
type BalanceStore struct {
	mu       sync.RWMutex
	balances map[string]domain.LeaveBalance
}

// NewBalanceStore creates a balance store seeded with the given ledgers.
func NewBalanceStore(seed []domain.LeaveBalance) *BalanceStore {
	balances := make(map[string]domain.LeaveBalance, len(seed))
	for _, b := range seed {
		balances[b.StudentID] = b
	}
	return &BalanceStore{balances: balances}
}

// Get returns the balance ledger for a student.
func (s *BalanceStore) Get(studentID string) (domain.LeaveBalance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.balances[studentID]
	return b, ok
}

// Set stores a student's ledger, replacing any previous one.
func (s *BalanceStore) Set(balance domain.LeaveBalance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[balance.StudentID] = balance
}

// All returns a copy of every ledger.
func (s *BalanceStore) All() []domain.LeaveBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LeaveBalance, 0, len(s.balances))
	for _, b := range s.balances {
		out = append(out, b)
	}
	return out
}

// NotificationStore is the append-only notification log. Fire-and-forget:
// no delivery guarantee, no ordering beyond insertion order.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications []domain.Notification
}

// NewNotificationStore creates an empty notification log.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

// Append adds a notification to the log and assigns its identity.
func (s *NotificationStore) Append(n domain.Notification) domain.Notification {
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
	return n
}

// ForUser returns the notifications targeted at a user, in insertion order.
func (s *NotificationStore) ForUser(userID string, unreadOnly bool) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Notification
	for _, n := range s.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out
}

// MarkRead flips the read flag on a notification.
func (s *NotificationStore) MarkRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}
