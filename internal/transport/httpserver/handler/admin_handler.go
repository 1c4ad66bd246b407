package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"reputation-service/internal/app/service"
	"reputation-service/internal/transport/httpserver/dto"
	"reputation-service/internal/validator"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	scoreService *service.ScoreService
	validator    *validator.Validator
	logger       *zap.Logger
	defaultLimit int
}

// NewAdminHandler creates a new AdminHandler. defaultLimit bounds manual
// recompute batches when the request does not specify one.
func NewAdminHandler(scoreSvc *service.ScoreService, v *validator.Validator, logger *zap.Logger, defaultLimit int) *AdminHandler {
	if defaultLimit < 1 {
		defaultLimit = 100
	}

	return &AdminHandler{
		scoreService: scoreSvc,
		validator:    v,
		logger:       logger,
		defaultLimit: defaultLimit,
	}
}

// RecomputeProfiles handles POST /api/v1/admin/recompute/profiles
func (h *AdminHandler) RecomputeProfiles(c *fiber.Ctx) error {
	return h.recompute(c, "profile", h.scoreService.RecomputeProfiles)
}

// RecomputePosts handles POST /api/v1/admin/recompute/posts
func (h *AdminHandler) RecomputePosts(c *fiber.Ctx) error {
	return h.recompute(c, "post", h.scoreService.RecomputePosts)
}

// recompute parses the optional limit parameter and runs one manual batch.
func (h *AdminHandler) recompute(
	c *fiber.Ctx,
	entity string,
	run func(ctx context.Context, limit int) (*service.BatchResult, error),
) error {
	var req dto.RecomputeRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	limit := req.Limit
	if limit == 0 {
		limit = h.defaultLimit
	}

	h.logger.Info("manual recompute triggered",
		zap.String("entity", entity),
		zap.Int("limit", limit),
	)

	result, err := run(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "RECOMPUTE_FAILED",
		})
	}

	return c.JSON(dto.FromBatchResult(result))
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.scoreService.Stats(c.Context())
	if err != nil {
		h.logger.Error("stats query failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to get stats",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromStats(stats))
}
