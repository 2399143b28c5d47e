package services

import (
	"errors"
	"fmt"

	"github.com/tutorbot/backend/internal/dto"
	"github.com/tutorbot/backend/internal/models"
	"gorm.io/gorm"
)

// Sentinel error texts double as the wire messages the API returns.
var (
	ErrUsernameTaken       = errors.New("Username already taken")
	ErrEmailTaken          = errors.New("Email already registered")
	ErrCredentialsRequired = errors.New("Username/email and password are required")
	// ErrInvalidCredentials is returned for both an unknown identifier and a
	// wrong password, so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("Invalid username/email or password")
	ErrUserNotFound       = errors.New("User not found")
)

// ValidationError reports the first missing required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new account. Required fields are checked in a fixed
// order (username, email, password) and only the first missing one is
// reported. The username/email pre-checks exist for friendlier messages;
// the unique indexes are what actually guarantees uniqueness under
// concurrent registrations.
func (s *UserService) Register(req *dto.RegisterRequest) (*models.User, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"username", req.Username},
		{"email", req.Email},
		{"password", req.Password},
	}
	for _, f := range fields {
		if f.value == "" {
			return nil, &ValidationError{Field: f.name}
		}
	}

	var existing models.User
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyDuplicate(req.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// classifyDuplicate decides which unique constraint a concurrent insert
// tripped. If the username is taken that wins; otherwise it was the email.
func (s *UserService) classifyDuplicate(username string) error {
	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

// Login verifies credentials against a username or an email match. No
// session or token is issued; the caller just gets the user record back.
func (s *UserService) Login(req *dto.LoginRequest) (*models.User, error) {
	if req.Login == "" || req.Password == "" {
		return nil, ErrCredentialsRequired
	}

	var user models.User
	if err := s.db.Where("username = ? OR email = ?", req.Login, req.Login).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// ListUsers returns every user. No pagination, matching the API contract.
func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetPreferences returns the user's preference row, creating it with all
// toggles off when it does not exist yet. The read is deliberately
// side-effecting: callers rely on the row existing afterwards.
func (s *UserService) GetPreferences(userID uint) (*models.UserPreference, error) {
	if err := ensureUser(s.db, userID); err != nil {
		return nil, err
	}

	var prefs models.UserPreference
	err := s.db.First(&prefs, "user_id = ?", userID).Error
	if err == nil {
		return &prefs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	prefs = models.UserPreference{UserID: userID}
	if err := s.db.Create(&prefs).Error; err != nil {
		// A concurrent request may have created the row first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := s.db.First(&prefs, "user_id = ?", userID).Error; err != nil {
				return nil, fmt.Errorf("failed to load preferences: %w", err)
			}
			return &prefs, nil
		}
		return nil, fmt.Errorf("failed to create preferences: %w", err)
	}
	return &prefs, nil
}

// SavePreferences applies a partial update: only toggles present in the
// request overwrite the stored values.
func (s *UserService) SavePreferences(userID uint, req *dto.UpdatePreferencesRequest) (*models.UserPreference, error) {
	prefs, err := s.GetPreferences(userID)
	if err != nil {
		return nil, err
	}

	if req.Visual != nil {
		prefs.Visual = *req.Visual
	}
	if req.ADHD != nil {
		prefs.ADHD = *req.ADHD
	}
	if req.DueDates != nil {
		prefs.DueDates = *req.DueDates
	}
	if req.OnboardingComplete != nil {
		prefs.OnboardingComplete = *req.OnboardingComplete
	}

	if err := s.db.Save(prefs).Error; err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}
	return prefs, nil
}

// ensureUser is shared by every per-user operation.
func ensureUser(db *gorm.DB, userID uint) error {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	return nil
}
