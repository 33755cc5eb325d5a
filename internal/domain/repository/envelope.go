package repository

import (
	"context"

	"signpubliq/internal/domain/entity"
)

// EnvelopeFilter narrows an envelope listing.
type EnvelopeFilter struct {
	// Status filters to one lifecycle state; empty means all.
	Status entity.EnvelopeStatus
	// Query matches against the envelope name and recipient emails.
	Query string
}

// EnvelopeRepository stores sent-envelope records backing the manage
// page.
type EnvelopeRepository interface {
	Insert(ctx context.Context, snapshot *entity.EnvelopeSnapshot) error
	List(ctx context.Context, filter EnvelopeFilter) ([]entity.EnvelopeSnapshot, error)
	CountByStatus(ctx context.Context) (map[entity.EnvelopeStatus]int, error)
}

// SendTransport hands a fully assembled snapshot to the external send
// operation.
type SendTransport interface {
	SendEnvelope(ctx context.Context, snapshot *entity.EnvelopeSnapshot) (*entity.SendReceipt, error)
}
