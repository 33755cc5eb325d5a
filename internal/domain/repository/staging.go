package repository

import (
	"context"

	"signpubliq/internal/domain/entity"
)

// StagingStore keeps uploaded document blobs across wizard steps,
// keyed by generated document id and scoped to one wizard session.
// Write failures must surface as entity.ErrStorageFailure so the
// caller never proceeds as if the document were staged.
type StagingStore interface {
	// Save assigns fresh ids, persists name/type/content and returns
	// metadata for the caller to carry forward without holding the
	// payloads.
	Save(ctx context.Context, sessionID string, files []entity.IncomingFile) ([]entity.DocumentMeta, error)
	// GetAll returns every staged document with its content.
	GetAll(ctx context.Context, sessionID string) ([]entity.StoredDocument, error)
	// Remove drops a single staged document.
	Remove(ctx context.Context, sessionID, documentID string) error
	// Clear purges all staged documents for the session.
	Clear(ctx context.Context, sessionID string) error
	// UsedBytes reports the total staged content size for the session.
	UsedBytes(ctx context.Context, sessionID string) (int64, error)
}
