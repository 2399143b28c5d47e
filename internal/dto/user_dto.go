package dto

import (
	"time"

	"github.com/tutorbot/backend/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// UpdatePreferencesRequest uses pointer fields so a toggle absent from the
// body is distinguishable from one explicitly set to false.
type UpdatePreferencesRequest struct {
	Visual             *bool `json:"visual"`
	ADHD               *bool `json:"adhd"`
	DueDates           *bool `json:"due_dates"`
	OnboardingComplete *bool `json:"onboarding_complete"`
}

// UserResponse is the external representation of a user. It never carries
// the password hash.
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

type PreferencesResponse struct {
	UserID             uint `json:"user_id"`
	Visual             bool `json:"visual"`
	ADHD               bool `json:"adhd"`
	DueDates           bool `json:"due_dates"`
	OnboardingComplete bool `json:"onboarding_complete"`
}

func NewPreferencesResponse(p *models.UserPreference) PreferencesResponse {
	return PreferencesResponse{
		UserID:             p.UserID,
		Visual:             p.Visual,
		ADHD:               p.ADHD,
		DueDates:           p.DueDates,
		OnboardingComplete: p.OnboardingComplete,
	}
}

type SavePreferencesResponse struct {
	Message     string              `json:"message"`
	Preferences PreferencesResponse `json:"preferences"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
