package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"signpubliq/internal/domain/entity"
	"signpubliq/internal/domain/repository"
	"signpubliq/internal/infrastructure/httpclient"
	"signpubliq/internal/infrastructure/secure"
)

type dashboardGateway struct {
	client httpclient.HTTPClient
	codec  *secure.Codec
	logger *zap.Logger
}

func NewDashboardGateway(client httpclient.HTTPClient, codec *secure.Codec, logger *zap.Logger) repository.DashboardGateway {
	return &dashboardGateway{
		client: client,
		codec:  codec,
		logger: logger,
	}
}

type summaryResponse struct {
	Summary *entity.DashboardSummary `json:"summary"`
}

// GetSummary fetches the stat tiles. The user id travels encoded in
// the path, matching the backend's contract.
func (g *dashboardGateway) GetSummary(ctx context.Context, userID int64) (*entity.DashboardSummary, error) {
	encoded, err := g.codec.Encrypt(strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to encode user id: %w", err)
	}

	var resp summaryResponse
	path := "/dashboard/summary/" + url.PathEscape(encoded)
	if err := g.client.Get(ctx, path, "", &resp); err != nil {
		return nil, fmt.Errorf("failed to get dashboard summary: %w", err)
	}
	if resp.Summary == nil {
		return nil, fmt.Errorf("dashboard summary missing from response")
	}
	return resp.Summary, nil
}
