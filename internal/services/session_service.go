package services

import (
	"errors"
	"fmt"

	"github.com/tutorbot/backend/internal/models"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("Could not find the specified session")

type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// ListSessions returns every session belonging to the user, oldest first.
func (s *SessionService) ListSessions(userID uint) ([]models.Session, error) {
	if err := ensureUser(s.db, userID); err != nil {
		return nil, err
	}

	var sessions []models.Session
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// GetSession returns a session and its messages in order. The user must
// exist; the session itself is looked up by id alone.
func (s *SessionService) GetSession(userID, sessionID uint) (*models.Session, []models.Message, error) {
	if err := ensureUser(s.db, userID); err != nil {
		return nil, nil, err
	}

	var session models.Session
	if err := s.db.First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}

	var messages []models.Message
	if err := s.db.Where("session_id = ?", sessionID).Order("id").Find(&messages).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load messages: %w", err)
	}
	return &session, messages, nil
}
