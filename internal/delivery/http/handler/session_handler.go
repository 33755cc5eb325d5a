package handler

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"signpubliq/internal/domain/entity"
	"signpubliq/internal/usecase"
	"signpubliq/internal/wizard"
)

// writerHeader carries the session's writer token on every mutating
// request.
const writerHeader = "X-Writer-Token"

type SessionHandler struct {
	usecase usecase.SessionUsecase
	logger  *zap.Logger
}

func NewSessionHandler(usecase usecase.SessionUsecase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		usecase: usecase,
		logger:  logger,
	}
}

type sessionResponse struct {
	Session *wizard.Session `json:"session"`
	Writer  string          `json:"writer_token,omitempty"`
}

type sessionStateResponse struct {
	Session           *wizard.Session     `json:"session"`
	GestureState      wizard.GestureState `json:"gesture_state"`
	CanEnterRecipient bool                `json:"can_enter_recipients"`
	CanEnterFields    bool                `json:"can_enter_fields"`
	CanEnterReview    bool                `json:"can_enter_review"`
	CanSend           bool                `json:"can_send"`
}

func newSessionState(s *wizard.Session) sessionStateResponse {
	return sessionStateResponse{
		Session:           s,
		GestureState:      s.Placement.State(),
		CanEnterRecipient: s.CanEnterRecipients(),
		CanEnterFields:    s.CanEnterFields(),
		CanEnterReview:    s.CanEnterReview(),
		CanSend:           s.CanSend(),
	}
}

// Create godoc
// @Summary Start a wizard session
// @Description Create a fresh envelope wizard session and claim it for a new writer token
// @Tags sessions
// @Produce json
// @Success 201 {object} entity.APIResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	s, writer, err := h.usecase.Create(ctx)
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(sessionResponse{Session: s, Writer: writer}, "Session created"),
	)
}

// Get godoc
// @Summary Get a wizard session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	s, err := h.usecase.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(newSessionState(s), "Session retrieved"))
}

// Cancel godoc
// @Summary Abandon a wizard session
// @Description Purge the session and its staged documents
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) Cancel(c *fiber.Ctx) error {
	if err := h.usecase.Cancel(c.UserContext(), c.Params("id"), c.Get(writerHeader)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Session cancelled"))
}

// Upload godoc
// @Summary Upload documents to a session
// @Description Validate and stage a multipart batch; rejected files are reported per file
// @Tags sessions
// @Accept mpfd
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/sessions/{id}/documents [post]
func (h *SessionHandler) Upload(c *fiber.Ctx) error {
	ctx := c.UserContext()

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Multipart form expected"),
		)
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "No files in upload"),
		)
	}

	files := make([]entity.IncomingFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(
				entity.NewErrorResponse("BAD_REQUEST", "Unreadable file "+fh.Filename),
			)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(
				entity.NewErrorResponse("BAD_REQUEST", "Unreadable file "+fh.Filename),
			)
		}
		files = append(files, entity.IncomingFile{
			Name:     fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Content:  content,
		})
	}

	result, err := h.usecase.UploadDocuments(ctx, c.Params("id"), c.Get(writerHeader), files)
	if err != nil {
		h.logger.Error("Failed to upload documents", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(result, "Documents staged"))
}

// RemoveDocument godoc
// @Summary Remove a staged document
// @Description Drop the document and cascade-delete its placed fields
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Document index"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/sessions/{id}/documents/{index} [delete]
func (h *SessionHandler) RemoveDocument(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Document index must be an integer"),
		)
	}

	if err := h.usecase.RemoveDocument(c.UserContext(), c.Params("id"), c.Get(writerHeader), index); err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Document removed"))
}

// AddRecipient godoc
// @Summary Add a blank recipient
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} entity.APIResponse
// @Router /api/v1/sessions/{id}/recipients [post]
func (h *SessionHandler) AddRecipient(c *fiber.Ctx) error {
	rec, err := h.usecase.AddRecipient(c.UserContext(), c.Params("id"), c.Get(writerHeader))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entity.NewSuccessResponse(rec, "Recipient added"))
}

type recipientUpdateRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// UpdateRecipient godoc
// @Summary Update one recipient attribute
// @Description Field names follow the wire form: email, first_name, last_name, designation, role, signing_order
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param rid path string true "Recipient ID"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/sessions/{id}/recipients/{rid} [patch]
func (h *SessionHandler) UpdateRecipient(c *fiber.Ctx) error {
	var req recipientUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	err := h.usecase.UpdateRecipient(c.UserContext(), c.Params("id"), c.Get(writerHeader), c.Params("rid"), req.Field, req.Value)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Recipient updated"))
}

// RemoveRecipient godoc
// @Summary Remove a recipient
// @Description Cascade-deletes the recipient's placed fields; the last recipient cannot be removed
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param rid path string true "Recipient ID"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/sessions/{id}/recipients/{rid} [delete]
func (h *SessionHandler) RemoveRecipient(c *fiber.Ctx) error {
	err := h.usecase.RemoveRecipient(c.UserContext(), c.Params("id"), c.Get(writerHeader), c.Params("rid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Recipient removed"))
}

// Gesture godoc
// @Summary Apply a placement canvas event
// @Description Feed one gesture event (type/recipient selection, clicks, drags) through the placement engine
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/sessions/{id}/gestures [post]
func (h *SessionHandler) Gesture(c *fiber.Ctx) error {
	var ev usecase.GestureEvent
	if err := c.BodyParser(&ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	result, err := h.usecase.ApplyGesture(c.UserContext(), c.Params("id"), c.Get(writerHeader), ev)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(result, "Gesture applied"))
}

type moveFieldRequest struct {
	Point wizard.Point `json:"point"`
}

// MoveField godoc
// @Summary Reposition a placed field
// @Description Out-of-range positions clamp to the canvas instead of erroring
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param fid path string true "Field ID"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/sessions/{id}/fields/{fid}/position [put]
func (h *SessionHandler) MoveField(c *fiber.Ctx) error {
	var req moveFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	err := h.usecase.MoveField(c.UserContext(), c.Params("id"), c.Get(writerHeader), c.Params("fid"), req.Point)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Field moved"))
}

// DeleteField godoc
// @Summary Delete a placed field
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param fid path string true "Field ID"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/sessions/{id}/fields/{fid} [delete]
func (h *SessionHandler) DeleteField(c *fiber.Ctx) error {
	err := h.usecase.DeleteField(c.UserContext(), c.Params("id"), c.Get(writerHeader), c.Params("fid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Field deleted"))
}

// UpdateSettings godoc
// @Summary Update envelope settings
// @Description Name, message, reminder and expiry; the expiry deadline itself is computed at send time
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/sessions/{id}/settings [patch]
func (h *SessionHandler) UpdateSettings(c *fiber.Ctx) error {
	var req usecase.SettingsUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	s, err := h.usecase.UpdateSettings(c.UserContext(), c.Params("id"), c.Get(writerHeader), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(newSessionState(s), "Settings updated"))
}
