package config

import (
	"log"
	"time"

	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/pkg/password"
)

// SeedData is the fixed local fallback dataset adopted by the sync layer
// whenever the upstream backend is unreachable at startup.
type SeedData struct {
	Users    []domain.User
	Leaves   []domain.Leave
	Balances []domain.LeaveBalance
	Holidays []domain.Holiday
}

// LoadSeedData builds the local fallback collections: a minimal working
// roster (admin, HOD, two faculty, two students) plus the sample balances
// and holiday calendar. Passwords are hashed at startup so local-mode login
// goes through the same bcrypt path as upstream users.
func LoadSeedData() *SeedData {
	hash := func(pwd string) string {
		h, err := password.Hash(pwd)
		if err != nil {
			log.Fatalf("❌ Failed to hash seed password: %v", err)
		}
		return h
	}

	users := []domain.User{
		{
			ID:       "1",
			Name:     "System Admin",
			Email:    "admin@university.edu",
			Role:     domain.RoleAdmin,
			Password: hash(getEnv("SEED_ADMIN_PASSWORD", "admin123")),
			IsActive: true,
		},
		{
			ID:       "2",
			Name:     "Dr. Meera Krishnan",
			Email:    "hod@university.edu",
			Role:     domain.RoleHOD,
			Password: hash("hod123"),
			IsActive: true,
		},
		{
			ID:       "3",
			Name:     "Dr. Arun Sharma",
			Email:    "arun.sharma@university.edu",
			Role:     domain.RoleFaculty,
			Password: hash("faculty123"),
			IsActive: true,
		},
		{
			ID:       "4",
			Name:     "Dr. Priya Nair",
			Email:    "priya.nair@university.edu",
			Role:     domain.RoleFaculty,
			Password: hash("faculty123"),
			IsActive: true,
		},
		{
			ID:         "5",
			Name:       "Rahul Verma",
			Email:      "rahul.verma@university.edu",
			Role:       domain.RoleStudent,
			RollNumber: "PHD2021001",
			GuideID:    "3",
			TAID:       "4",
			Password:   hash("student123"),
			IsActive:   true,
		},
		{
			ID:         "6",
			Name:       "Ananya Singh",
			Email:      "ananya.singh@university.edu",
			Role:       domain.RoleStudent,
			RollNumber: "PHD2021002",
			GuideID:    "4",
			TAID:       "3",
			Password:   hash("student123"),
			IsActive:   true,
		},
	}

	now := time.Now()
	balances := []domain.LeaveBalance{
		{
			StudentID:      "5",
			PersonalLeaves: domain.DefaultPersonalLeaves,
			MedicalLeaves:  domain.DefaultMedicalLeaves,
			AcademicLeaves: domain.DefaultAcademicLeaves,
			LastReset:      now,
		},
		{
			StudentID:      "6",
			PersonalLeaves: 12,
			MedicalLeaves:  3,
			AcademicLeaves: 20,
			LastReset:      now,
		},
	}

	holidays := []domain.Holiday{
		{ID: "1", Date: "2024-01-26", Name: "Republic Day", Type: domain.HolidayNational},
		{ID: "2", Date: "2024-03-08", Name: "Holi", Type: domain.HolidayNational},
	}

	log.Printf("✅ Local seed prepared: %d users, %d balances, %d holidays", len(users), len(balances), len(holidays))
	return &SeedData{
		Users:    users,
		Leaves:   nil, // leave collection starts empty in local mode
		Balances: balances,
		Holidays: holidays,
	}
}
