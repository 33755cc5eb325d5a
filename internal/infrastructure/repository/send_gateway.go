package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"signpubliq/internal/domain/entity"
	"signpubliq/internal/domain/repository"
	"signpubliq/internal/infrastructure/httpclient"
)

type sendGateway struct {
	client httpclient.HTTPClient
	logger *zap.Logger
}

// NewSendGateway hands envelope snapshots to the backend's send
// operation through the codec transport.
func NewSendGateway(client httpclient.HTTPClient, logger *zap.Logger) repository.SendTransport {
	return &sendGateway{
		client: client,
		logger: logger,
	}
}

func (g *sendGateway) SendEnvelope(ctx context.Context, snapshot *entity.EnvelopeSnapshot) (*entity.SendReceipt, error) {
	var receipt entity.SendReceipt

	err := g.client.Post(ctx, "/envelopes/send", "", snapshot, &receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to send envelope: %w", err)
	}

	g.logger.Info("Envelope accepted by backend",
		zap.String("envelope_id", receipt.ID),
		zap.String("status", string(receipt.Status)),
	)
	return &receipt, nil
}
