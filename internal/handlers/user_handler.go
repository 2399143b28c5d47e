package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tutorbot/backend/internal/dto"
	"github.com/tutorbot/backend/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	user, err := h.users.Register(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Message: "User created successfully",
		User:    dto.NewUserResponse(user),
	})
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	user, err := h.users.Login(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.AuthResponse{
		Message: "Login successful",
		User:    dto.NewUserResponse(user),
	})
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers()
	if err != nil {
		return respondError(c, err)
	}

	resp := dto.UsersResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(resp)
}

func (h *UserHandler) GetPreferences(c *fiber.Ctx) error {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid user id"})
	}

	prefs, err := h.users.GetPreferences(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.NewPreferencesResponse(prefs))
}

func (h *UserHandler) SavePreferences(c *fiber.Ctx) error {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid user id"})
	}

	var req dto.UpdatePreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	prefs, err := h.users.SavePreferences(userID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.SavePreferencesResponse{
		Message:     "Preferences saved",
		Preferences: dto.NewPreferencesResponse(prefs),
	})
}

// parseIDParam reads an integer path parameter. A negative id cannot match
// any row, so it passes through and reads as unknown downstream rather than
// malformed.
func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil {
		return 0, false
	}
	if id < 0 {
		return 0, true
	}
	return uint(id), true
}

// respondError translates service errors into the API's status codes and
// {"error": ...} bodies. Anything unrecognized is a 500 carrying the
// failure's description.
func respondError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation),
		errors.Is(err, services.ErrCredentialsRequired),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
}
