package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"reelpick/internal/models"
	"reelpick/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateUser creates a new user.
func (h *UserHandler) CreateUser(c fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	user, err := h.svc.CreateUser(req)
	if err != nil {
		slog.Error("failed to create user", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser returns a user by ID.
func (h *UserHandler) GetUser(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	user, err := h.svc.GetUser(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal error"})
	}

	return c.JSON(user)
}

// SetPreference sets or updates the user's preference profile.
func (h *UserHandler) SetPreference(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	var req models.SetPreferenceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	pref, err := h.svc.SetPreference(id, req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "user not found"})
		}
		slog.Error("failed to set preference", "user_id", id, "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(pref)
}

// GetPreference returns the user's preference profile.
func (h *UserHandler) GetPreference(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	pref, err := h.svc.GetPreference(id)
	if err != nil {
		slog.Error("failed to get preference", "user_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to get preferences"})
	}

	return c.JSON(pref)
}

// RecordInteraction records a user interaction with a catalog item.
func (h *UserHandler) RecordInteraction(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	var req models.CreateInteractionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	inter, err := h.svc.RecordInteraction(id, req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "user not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(inter)
}

// GetInteractions returns the latest interactions for a user.
func (h *UserHandler) GetInteractions(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	limit := fiber.Query(c, "limit", 50)
	interactions, err := h.svc.GetInteractions(id, limit)
	if err != nil {
		slog.Error("failed to get interactions", "user_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to get interactions"})
	}

	return c.JSON(fiber.Map{"interactions": interactions})
}
