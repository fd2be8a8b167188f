package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"reelpick/internal/engine"
	"reelpick/internal/service"
)

type RecommendationHandler struct {
	svc *service.RecommendationService
}

func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// Health godoc
// GET /health
func (h *RecommendationHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "reelpick",
	})
}

// GetRecommendations godoc
// GET /api/v1/users/:id/recommendations?limit=10&sort=score&refresh=false
func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	limit := fiber.Query(c, "limit", 10)
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	sortView := fiber.Query(c, "sort", engine.SortByScore)
	refresh := fiber.Query(c, "refresh", false)

	resp, err := h.svc.GetRecommendations(c.Context(), userID, limit, sortView, refresh)
	if err != nil {
		if errors.Is(err, engine.ErrNoSelectedGenres) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "set your preferences with at least one genre first",
			})
		}
		slog.Error("failed to generate recommendations", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to generate recommendations",
		})
	}

	return c.JSON(resp)
}

// GetGenres godoc
// GET /api/v1/genres
func (h *RecommendationHandler) GetGenres(c fiber.Ctx) error {
	genres, err := h.svc.GetGenres(c.Context())
	if err != nil {
		slog.Error("failed to fetch genres", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to fetch genres",
		})
	}

	return c.JSON(fiber.Map{"genres": genres})
}

// GetRules godoc
// GET /api/v1/rules
func (h *RecommendationHandler) GetRules(c fiber.Ctx) error {
	rules, err := h.svc.GetRules(c.Context())
	if err != nil {
		slog.Error("failed to fetch rules", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to fetch scoring rules",
		})
	}

	return c.JSON(fiber.Map{"rules": rules})
}
