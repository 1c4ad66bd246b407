// Package handler provides HTTP handlers for the API.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"reputation-service/internal/app/service"
	"reputation-service/internal/transport/httpserver/dto"
)

// ScoreHandler handles score lookup HTTP requests.
type ScoreHandler struct {
	service *service.ScoreService
	logger  *zap.Logger
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(svc *service.ScoreService, logger *zap.Logger) *ScoreHandler {
	return &ScoreHandler{
		service: svc,
		logger:  logger,
	}
}

// GetProfileScore handles GET /api/v1/profiles/:id/score
func (h *ScoreHandler) GetProfileScore(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	rec, err := h.service.GetProfileScore(c.Context(), id)
	if err != nil {
		h.logger.Error("get profile score failed", zap.String("id", id), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to get profile score",
			Code:  "INTERNAL_ERROR",
		})
	}

	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "profile has not been scored",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromProfileScoreRecord(rec))
}

// GetPostScore handles GET /api/v1/posts/:id/score
func (h *ScoreHandler) GetPostScore(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	rec, err := h.service.GetPostScore(c.Context(), id)
	if err != nil {
		h.logger.Error("get post score failed", zap.String("id", id), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to get post score",
			Code:  "INTERNAL_ERROR",
		})
	}

	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "post has not been scored",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromPostScoreRecord(rec))
}
