package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"signpubliq/internal/domain/entity"
	"signpubliq/internal/domain/repository"
	"signpubliq/internal/usecase"
)

type EnvelopeHandler struct {
	usecase usecase.EnvelopeUsecase
	logger  *zap.Logger
}

func NewEnvelopeHandler(usecase usecase.EnvelopeUsecase, logger *zap.Logger) *EnvelopeHandler {
	return &EnvelopeHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Review godoc
// @Summary Review an envelope before sending
// @Description Per-document fields, per-recipient counts and colors, role totals and the send gate
// @Tags envelopes
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/sessions/{id}/review [get]
func (h *EnvelopeHandler) Review(c *fiber.Ctx) error {
	summary, err := h.usecase.Review(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(summary, "Review assembled"))
}

// Send godoc
// @Summary Send the envelope
// @Description Assemble the snapshot, hand it to the backend and purge the wizard state on success
// @Tags envelopes
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Failure 502 {object} entity.APIResponse
// @Router /api/v1/sessions/{id}/send [post]
func (h *EnvelopeHandler) Send(c *fiber.Ctx) error {
	snapshot, err := h.usecase.Send(c.UserContext(), c.Params("id"), c.Get(writerHeader))
	if err != nil {
		h.logger.Error("Failed to send envelope",
			zap.String("session_id", c.Params("id")), zap.Error(err))
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(snapshot, "Envelope sent"),
	)
}

type envelopeListResponse struct {
	Envelopes []entity.EnvelopeSnapshot     `json:"envelopes"`
	Counts    map[entity.EnvelopeStatus]int `json:"counts"`
}

// List godoc
// @Summary List sent envelopes
// @Description Filter by status, search by name or recipient email
// @Tags envelopes
// @Produce json
// @Param status query string false "Lifecycle status filter"
// @Param q query string false "Search query"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/envelopes [get]
func (h *EnvelopeHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	filter := repository.EnvelopeFilter{
		Status: entity.EnvelopeStatus(c.Query("status")),
		Query:  c.Query("q"),
	}

	envelopes, err := h.usecase.List(ctx, filter)
	if err != nil {
		h.logger.Error("Failed to list envelopes", zap.Error(err))
		return respondError(c, err)
	}
	counts, err := h.usecase.StatusCounts(ctx)
	if err != nil {
		h.logger.Error("Failed to count envelopes", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(envelopeListResponse{
		Envelopes: envelopes,
		Counts:    counts,
	}, "Envelopes retrieved"))
}
