package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorbot/backend/internal/dto"
	"github.com/tutorbot/backend/internal/services"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid user id"})
	}

	sessions, err := h.sessions.ListSessions(userID)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		resp = append(resp, dto.NewSessionResponse(&sessions[i]))
	}
	return c.JSON(resp)
}

func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid user id"})
	}

	// The user check comes first, so a malformed session id on a valid user
	// reads as an unknown session, not a malformed request.
	sessionID, ok := parseIDParam(c, "session_id")
	if !ok {
		sessionID = 0
	}

	session, messages, err := h.sessions.GetSession(userID, sessionID)
	if err != nil {
		return respondError(c, err)
	}

	resp := dto.SessionDetailResponse{
		Topic:    session.Topic,
		Messages: make([]dto.MessageResponse, 0, len(messages)),
	}
	for i := range messages {
		resp.Messages = append(resp.Messages, dto.NewMessageResponse(&messages[i]))
	}
	return c.JSON(resp)
}
