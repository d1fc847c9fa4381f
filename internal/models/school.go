package models

import "time"

type LicenseTier string

const (
	TierTrial    LicenseTier = "trial"
	TierStandard LicenseTier = "standard"
	TierPremium  LicenseTier = "premium"
)

var ValidTiers = map[LicenseTier]bool{
	TierTrial:    true,
	TierStandard: true,
	TierPremium:  true,
}

// TierSeats is the maximum number of student accounts per license tier.
var TierSeats = map[LicenseTier]int{
	TierTrial:    25,
	TierStandard: 500,
	TierPremium:  5000,
}

type School struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	LicenseTier LicenseTier `json:"license_tier"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// SeatLimit returns the student seat cap for the school's tier.
func (s School) SeatLimit() int {
	if seats, ok := TierSeats[s.LicenseTier]; ok {
		return seats
	}
	return TierSeats[TierTrial]
}

type CreateSchoolRequest struct {
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	LicenseTier LicenseTier `json:"license_tier"`
}

type UpdateSchoolRequest struct {
	Name        *string      `json:"name,omitempty"`
	LicenseTier *LicenseTier `json:"license_tier,omitempty"`
	IsActive    *bool        `json:"is_active,omitempty"`
}

type SchoolUsage struct {
	School       School `json:"school"`
	StudentCount int    `json:"student_count"`
	SeatLimit    int    `json:"seat_limit"`
}
