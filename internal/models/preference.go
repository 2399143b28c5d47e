package models

// UserPreference holds the per-user learning preference toggles.
// At most one row exists per user; the row is created lazily with all
// toggles off the first time a user's preferences are read or written.
type UserPreference struct {
	UserID             uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Visual             bool `gorm:"not null;default:false" json:"visual"`
	ADHD               bool `gorm:"not null;default:false" json:"adhd"`
	DueDates           bool `gorm:"not null;default:false" json:"due_dates"`
	OnboardingComplete bool `gorm:"not null;default:false" json:"onboarding_complete"`
}
