package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"signpubliq/internal/domain/entity"
	"signpubliq/internal/domain/repository"
)

// DashboardUsecase serves the read-only stat tiles for the signed-in
// user.
type DashboardUsecase interface {
	GetSummary(ctx context.Context, token string) (*entity.DashboardSummary, error)
}

type dashboardUsecase struct {
	gateway repository.DashboardGateway
	auth    AuthUsecase
	logger  *zap.Logger
}

func NewDashboardUsecase(gateway repository.DashboardGateway, auth AuthUsecase, logger *zap.Logger) DashboardUsecase {
	return &dashboardUsecase{
		gateway: gateway,
		auth:    auth,
		logger:  logger,
	}
}

func (u *dashboardUsecase) GetSummary(ctx context.Context, token string) (*entity.DashboardSummary, error) {
	user, err := u.auth.DecodeUser(token)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable access token", entity.ErrValidation)
	}
	if user.UserID == 0 {
		return nil, fmt.Errorf("%w: token carries no user id", entity.ErrValidation)
	}

	summary, err := u.gateway.GetSummary(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	u.logger.Debug("Dashboard summary fetched", zap.Int64("user_id", user.UserID))
	return summary, nil
}
