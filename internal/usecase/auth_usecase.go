package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"signpubliq/internal/domain/entity"
	"signpubliq/internal/domain/repository"
	"signpubliq/internal/infrastructure/redis"
	"signpubliq/internal/wizard"
)

// SignupStage tracks where an email is in the signup flow. Each step
// is only legal from the stage before it.
type SignupStage string

const (
	StageAwaitingOTP SignupStage = "awaiting_otp"
	StageVerified    SignupStage = "verified"
)

const (
	signupKeyPrefix = "signpubliq:signup:"
	signupFlowTTL   = 30 * time.Minute
)

type signupFlow struct {
	Email     string      `json:"email"`
	Stage     SignupStage `json:"stage"`
	StartedAt time.Time   `json:"started_at"`
}

// AuthUsecase orchestrates login and the three-step signup flow
// against the auth backend. Tokens are issued and verified backend
// side; this service only decodes claims for display.
type AuthUsecase interface {
	Login(ctx context.Context, email, password string) (*entity.AuthResult, error)
	Logout(ctx context.Context, token string) error
	DecodeUser(token string) (*entity.User, error)

	InitiateSignup(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, email, otp string) error
	CompleteSignup(ctx context.Context, email string, details map[string]any) error
}

type authUsecase struct {
	gateway repository.AuthGateway
	redis   *redis.RedisClient
	logger  *zap.Logger
}

func NewAuthUsecase(gateway repository.AuthGateway, redisClient *redis.RedisClient, logger *zap.Logger) AuthUsecase {
	return &authUsecase{
		gateway: gateway,
		redis:   redisClient,
		logger:  logger,
	}
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	if !wizard.ValidEmail(email) {
		return nil, fmt.Errorf("%w: malformed email", entity.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", entity.ErrValidation)
	}

	result, err := u.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := u.DecodeUser(result.AccessToken)
	if err != nil {
		// Login succeeded; an undecodable token only costs the profile
		// display.
		u.logger.Warn("Failed to decode access token claims", zap.Error(err))
	} else {
		result.User = user
	}

	u.logger.Info("User logged in", zap.String("email", email))
	return result, nil
}

// Logout invalidates the token backend side. The caller drops its own
// copy regardless of the outcome.
func (u *authUsecase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", entity.ErrValidation)
	}
	if err := u.gateway.Logout(ctx, token); err != nil {
		return err
	}
	u.logger.Info("User logged out")
	return nil
}

// DecodeUser extracts the identity claims from an access token without
// verifying the signature. Verification already happened backend side
// when the token was issued.
func (u *authUsecase) DecodeUser(token string) (*entity.User, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("failed to decode token: unexpected claims type")
	}

	user := &entity.User{}
	if v, ok := claims["user_id"].(float64); ok {
		user.UserID = int64(v)
	}
	if v, ok := claims["first_name"].(string); ok {
		user.FirstName = v
	}
	if v, ok := claims["last_name"].(string); ok {
		user.LastName = v
	}
	if v, ok := claims["email"].(string); ok {
		user.Email = v
	}
	if v, ok := claims["role_type_id"].(float64); ok {
		user.RoleTypeID = int(v)
	}
	if v, ok := claims["exp"].(float64); ok {
		user.ExpiresAt = int64(v)
	}
	if v, ok := claims["iat"].(float64); ok {
		user.IssuedAt = int64(v)
	}
	return user, nil
}

// InitiateSignup asks the backend to email an OTP and opens a flow
// record awaiting it.
func (u *authUsecase) InitiateSignup(ctx context.Context, email string) error {
	if !wizard.ValidEmail(email) {
		return fmt.Errorf("%w: malformed email", entity.ErrValidation)
	}
	if err := u.gateway.InitiateSignup(ctx, email); err != nil {
		return err
	}

	flow := signupFlow{Email: email, Stage: StageAwaitingOTP, StartedAt: time.Now().UTC()}
	if err := u.saveFlow(ctx, flow); err != nil {
		return err
	}

	u.logger.Info("Signup initiated", zap.String("email", email))
	return nil
}

// VerifyEmail checks the OTP with the backend and advances the flow.
func (u *authUsecase) VerifyEmail(ctx context.Context, email, otp string) error {
	flow, err := u.getFlow(ctx, email)
	if err != nil {
		return err
	}
	if flow.Stage != StageAwaitingOTP {
		return fmt.Errorf("%w: email already verified", entity.ErrValidation)
	}
	if otp == "" {
		return fmt.Errorf("%w: otp is required", entity.ErrValidation)
	}

	if err := u.gateway.VerifyEmail(ctx, email, otp); err != nil {
		return err
	}

	flow.Stage = StageVerified
	if err := u.saveFlow(ctx, *flow); err != nil {
		return err
	}

	u.logger.Info("Signup email verified", zap.String("email", email))
	return nil
}

// CompleteSignup submits the account details for a verified email and
// closes the flow.
func (u *authUsecase) CompleteSignup(ctx context.Context, email string, details map[string]any) error {
	flow, err := u.getFlow(ctx, email)
	if err != nil {
		return err
	}
	if flow.Stage != StageVerified {
		return fmt.Errorf("%w: email not verified yet", entity.ErrValidation)
	}

	body := make(map[string]any, len(details)+1)
	for k, v := range details {
		body[k] = v
	}
	body["email"] = email

	if err := u.gateway.CompleteSignup(ctx, body); err != nil {
		return err
	}

	if err := u.redis.Del(ctx, signupKeyPrefix+email); err != nil {
		u.logger.Warn("Failed to drop signup flow record",
			zap.String("email", email), zap.Error(err))
	}

	u.logger.Info("Signup completed", zap.String("email", email))
	return nil
}

func (u *authUsecase) saveFlow(ctx context.Context, flow signupFlow) error {
	raw, err := json.Marshal(flow)
	if err != nil {
		return fmt.Errorf("failed to encode signup flow: %w", err)
	}
	if err := u.redis.Set(ctx, signupKeyPrefix+flow.Email, raw, signupFlowTTL); err != nil {
		return fmt.Errorf("failed to save signup flow: %w", err)
	}
	return nil
}

func (u *authUsecase) getFlow(ctx context.Context, email string) (*signupFlow, error) {
	raw, err := u.redis.Get(ctx, signupKeyPrefix+email)
	if err != nil {
		if redis.IsNil(err) {
			return nil, fmt.Errorf("%w: no signup in progress for %s", entity.ErrValidation, email)
		}
		return nil, fmt.Errorf("failed to load signup flow: %w", err)
	}
	var flow signupFlow
	if err := json.Unmarshal([]byte(raw), &flow); err != nil {
		return nil, fmt.Errorf("failed to decode signup flow: %w", err)
	}
	return &flow, nil
}
