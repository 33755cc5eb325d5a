package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"signpubliq/internal/config"
	"signpubliq/internal/domain/entity"
)

type HealthHandler struct {
	config  *config.Config
	started time.Time
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		config:  cfg,
		started: time.Now(),
	}
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// Health godoc
// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(entity.NewSuccessResponse(HealthResponse{
		Status:    "healthy",
		Service:   h.config.App.Name,
		Timestamp: time.Now(),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	}, "Service is healthy"))
}
