package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"signpubliq/internal/domain/entity"
	"signpubliq/internal/domain/repository"
	"signpubliq/internal/infrastructure/httpclient"
)

// frontendRoleTypeID tags every auth request with the browser-client
// role, the way the original wizard does.
const frontendRoleTypeID = 1

type authGateway struct {
	client httpclient.HTTPClient
	logger *zap.Logger
}

func NewAuthGateway(client httpclient.HTTPClient, logger *zap.Logger) repository.AuthGateway {
	return &authGateway{
		client: client,
		logger: logger,
	}
}

type loginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (g *authGateway) Login(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	body := map[string]any{
		"email":      email,
		"password":   password,
		"roleTypeId": frontendRoleTypeID,
	}

	var resp loginResponse
	if err := g.client.Post(ctx, "/auth/login", "", body, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("login failed: %s", resp.Message)
	}

	return &entity.AuthResult{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

func (g *authGateway) Logout(ctx context.Context, token string) error {
	if err := g.client.Post(ctx, "/auth/logout", token, nil, nil); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

func (g *authGateway) InitiateSignup(ctx context.Context, email string) error {
	body := map[string]any{"email": email}
	if err := g.client.Post(ctx, "/auth/initiate-signup", "", body, nil); err != nil {
		return fmt.Errorf("failed to initiate signup: %w", err)
	}
	return nil
}

func (g *authGateway) VerifyEmail(ctx context.Context, email, otp string) error {
	body := map[string]any{"email": email, "otp": otp}
	if err := g.client.Post(ctx, "/auth/verify-email", "", body, nil); err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}
	return nil
}

func (g *authGateway) CompleteSignup(ctx context.Context, details map[string]any) error {
	body := make(map[string]any, len(details)+1)
	for k, v := range details {
		body[k] = v
	}
	body["roleTypeId"] = frontendRoleTypeID

	if err := g.client.Post(ctx, "/auth/signup", "", body, nil); err != nil {
		return fmt.Errorf("failed to complete signup: %w", err)
	}
	return nil
}
