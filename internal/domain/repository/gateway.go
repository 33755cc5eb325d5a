package repository

import (
	"context"

	"signpubliq/internal/domain/entity"
)

// AuthGateway is the external auth/session service. Token issuance
// and OTP verification happen backend-side; this service only
// orchestrates the calls.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*entity.AuthResult, error)
	Logout(ctx context.Context, token string) error
	InitiateSignup(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, email, otp string) error
	CompleteSignup(ctx context.Context, details map[string]any) error
}

// DashboardGateway is the read-only summary statistics service.
type DashboardGateway interface {
	GetSummary(ctx context.Context, userID int64) (*entity.DashboardSummary, error)
}
