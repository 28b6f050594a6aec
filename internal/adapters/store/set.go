package store

import (
	"context"

	"phd-timeoff/internal/adapters/remote"
	"phd-timeoff/internal/core/domain"
)

// Set bundles every collection the application works with.
type Set struct {
	Leaves        *LeaveStore
	Users         *UserStore
	Holidays      *HolidayStore
	Balances      *BalanceStore
	Notifications *NotificationStore
}

// NewSet wires every store against the same upstream client and seed data.
func NewSet(client *remote.Client, users []domain.User, leaves []domain.Leave, balances []domain.LeaveBalance, holidays []domain.Holiday) *Set {
	return &Set{
		Leaves:        NewLeaveStore(client, leaves),
		Users:         NewUserStore(client, users),
		Holidays:      NewHolidayStore(client, holidays),
		Balances:      NewBalanceStore(balances),
		Notifications: NewNotificationStore(),
	}
}

// Load runs the read-through for every upstream-backed collection. Each
// collection decides its own source; a partial upstream can leave some
// collections remote and others local.
func (s *Set) Load(ctx context.Context) {
	s.Users.Load(ctx)
	s.Leaves.Load(ctx)
	s.Holidays.Load(ctx)
}
