package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"reputation-service/internal/app/service"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	scoreService *service.ScoreService
	logger       *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.ScoreService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		scoreService: svc,
		logger:       logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	stats, err := h.scoreService.Stats(c.Context())
	if err != nil {
		h.logger.Warn("dashboard stats unavailable", zap.Error(err))
	}

	data := fiber.Map{
		"Title": "Reputation Dashboard",
	}
	if stats != nil {
		data["ProfilesScored"] = stats.ProfilesScored
		data["PostsScored"] = stats.PostsScored
		data["AvgProfileScore"] = stats.AvgProfileScore
		data["AvgSpamScore"] = stats.AvgSpamScore
		data["EligibleProfiles"] = stats.EligibleProfiles
	}

	return c.Render("pages/dashboard", data, "layouts/base")
}
