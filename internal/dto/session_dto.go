package dto

import (
	"time"

	"github.com/tutorbot/backend/internal/models"
)

type SessionResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Topic     string `json:"topic"`
	CreatedAt string `json:"created_at"`
}

func NewSessionResponse(s *models.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Topic:     s.Topic,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type MessageResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	SessionID uint   `json:"session_id"`
	Message   string `json:"message"`
	FromUser  bool   `json:"from_user"`
	CreatedAt string `json:"created_at"`
}

func NewMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		SessionID: m.SessionID,
		Message:   m.Body,
		FromUser:  m.FromUser,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// SessionDetailResponse is the transcript view: the session's topic plus
// every message in order.
type SessionDetailResponse struct {
	Topic    string            `json:"topic"`
	Messages []MessageResponse `json:"messages"`
}
