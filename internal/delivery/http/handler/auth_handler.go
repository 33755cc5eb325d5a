package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"signpubliq/internal/domain/entity"
	"signpubliq/internal/usecase"
)

type AuthHandler struct {
	usecase usecase.AuthUsecase
	logger  *zap.Logger
}

func NewAuthHandler(usecase usecase.AuthUsecase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		usecase: usecase,
		logger:  logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	result, err := h.usecase.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Login failed", zap.String("email", req.Email), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(result, "Logged in"))
}

// Logout godoc
// @Summary Log out
// @Description Invalidate the bearer token backend side
// @Tags auth
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if err := h.usecase.Logout(c.UserContext(), token); err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Logged out"))
}

// Me godoc
// @Summary Current user
// @Description Decode the identity claims carried by the bearer token
// @Tags auth
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 401 {object} entity.APIResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(
			entity.NewErrorResponse("UNAUTHORIZED", "Bearer token required"),
		)
	}

	user, err := h.usecase.DecodeUser(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(
			entity.NewErrorResponse("UNAUTHORIZED", "Unreadable access token"),
		)
	}
	return c.JSON(entity.NewSuccessResponse(user, "User retrieved"))
}

type signupRequest struct {
	Email   string         `json:"email"`
	OTP     string         `json:"otp,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// InitiateSignup godoc
// @Summary Start signup
// @Description Ask the backend to email a one-time code
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/auth/signup/initiate [post]
func (h *AuthHandler) InitiateSignup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	if err := h.usecase.InitiateSignup(c.UserContext(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Verification code sent"))
}

// VerifyEmail godoc
// @Summary Verify the signup email
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/auth/signup/verify [post]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	if err := h.usecase.VerifyEmail(c.UserContext(), req.Email, req.OTP); err != nil {
		return respondError(c, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Email verified"))
}

// CompleteSignup godoc
// @Summary Complete signup
// @Description Submit account details for a verified email
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} entity.APIResponse
// @Router /api/v1/auth/signup/complete [post]
func (h *AuthHandler) CompleteSignup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	if err := h.usecase.CompleteSignup(c.UserContext(), req.Email, req.Details); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(nil, "Account created"),
	)
}
