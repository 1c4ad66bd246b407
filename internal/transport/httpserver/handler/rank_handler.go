package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"reputation-service/internal/app/service"
	"reputation-service/internal/transport/httpserver/dto"
	"reputation-service/internal/validator"
)

// RankHandler handles comment ranking HTTP requests.
type RankHandler struct {
	service   *service.RankingService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewRankHandler creates a new RankHandler.
func NewRankHandler(svc *service.RankingService, v *validator.Validator, logger *zap.Logger) *RankHandler {
	return &RankHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Rank handles POST /api/v1/comments/rank
func (h *RankHandler) Rank(c *fiber.Ctx) error {
	var req dto.RankRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	mode := req.RankMode()
	ranked, err := h.service.Rank(req.ToSignals(), mode)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_MODE",
		})
	}

	return c.JSON(dto.FromRankedComments(mode, ranked))
}
