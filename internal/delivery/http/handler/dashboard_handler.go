package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"signpubliq/internal/domain/entity"
	"signpubliq/internal/usecase"
)

type DashboardHandler struct {
	usecase usecase.DashboardUsecase
	logger  *zap.Logger
}

func NewDashboardHandler(usecase usecase.DashboardUsecase, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Summary godoc
// @Summary Dashboard stat tiles
// @Description Envelope totals for the user identified by the bearer token
// @Tags dashboard
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(
			entity.NewErrorResponse("UNAUTHORIZED", "Bearer token required"),
		)
	}

	summary, err := h.usecase.GetSummary(c.UserContext(), token)
	if err != nil {
		h.logger.Error("Failed to get dashboard summary", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(summary, "Summary retrieved"))
}
