package staging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"signpubliq/internal/config"
	"signpubliq/internal/domain/entity"
	"signpubliq/internal/domain/repository"
	"signpubliq/internal/infrastructure/redis"
)

const (
	metaKeyPrefix = "signpubliq:staging:meta:"
	docKeyPrefix  = "signpubliq:staging:doc:"
)

// store keeps staged document blobs in Redis so they survive the
// wizard's navigation between steps. Metadata lives in one JSON list
// per session; each blob gets its own key.
type store struct {
	config      *config.Config
	redisClient *redis.RedisClient
	logger      *zap.Logger
}

func NewStagingStore(cfg *config.Config, redisClient *redis.RedisClient, logger *zap.Logger) repository.StagingStore {
	return &store{
		config:      cfg,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (s *store) Save(ctx context.Context, sessionID string, files []entity.IncomingFile) ([]entity.DocumentMeta, error) {
	metas, err := s.loadMetas(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	saved := make([]entity.DocumentMeta, 0, len(files))
	for _, f := range files {
		meta := entity.DocumentMeta{
			ID:       "doc-" + uuid.NewString(),
			Name:     f.Name,
			MimeType: f.MimeType,
			Size:     int64(len(f.Content)),
		}

		if err := s.redisClient.Set(ctx, docKeyPrefix+sessionID+":"+meta.ID, f.Content, s.config.Wizard.SessionTTL); err != nil {
			// Roll back this batch's blobs so a half-staged upload is
			// never reported as success.
			for _, m := range saved {
				_ = s.redisClient.Del(ctx, docKeyPrefix+sessionID+":"+m.ID)
			}
			return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
		}
		saved = append(saved, meta)
	}

	metas = append(metas, saved...)
	if err := s.saveMetas(ctx, sessionID, metas); err != nil {
		for _, m := range saved {
			_ = s.redisClient.Del(ctx, docKeyPrefix+sessionID+":"+m.ID)
		}
		return nil, err
	}

	s.logger.Info("Documents staged",
		zap.String("session_id", sessionID),
		zap.Int("count", len(saved)),
	)

	return saved, nil
}

func (s *store) GetAll(ctx context.Context, sessionID string) ([]entity.StoredDocument, error) {
	metas, err := s.loadMetas(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	docs := make([]entity.StoredDocument, 0, len(metas))
	for _, m := range metas {
		content, err := s.redisClient.Get(ctx, docKeyPrefix+sessionID+":"+m.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
		}
		docs = append(docs, entity.StoredDocument{
			DocumentMeta: m,
			Content:      []byte(content),
		})
	}
	return docs, nil
}

func (s *store) Remove(ctx context.Context, sessionID, documentID string) error {
	metas, err := s.loadMetas(ctx, sessionID)
	if err != nil {
		return err
	}

	kept := metas[:0]
	for _, m := range metas {
		if m.ID == documentID {
			continue
		}
		kept = append(kept, m)
	}

	if err := s.redisClient.Del(ctx, docKeyPrefix+sessionID+":"+documentID); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	return s.saveMetas(ctx, sessionID, kept)
}

func (s *store) Clear(ctx context.Context, sessionID string) error {
	metas, err := s.loadMetas(ctx, sessionID)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(metas)+1)
	for _, m := range metas {
		keys = append(keys, docKeyPrefix+sessionID+":"+m.ID)
	}
	keys = append(keys, metaKeyPrefix+sessionID)

	if err := s.redisClient.Del(ctx, keys...); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}

	s.logger.Info("Staging cleared", zap.String("session_id", sessionID))
	return nil
}

func (s *store) UsedBytes(ctx context.Context, sessionID string) (int64, error) {
	metas, err := s.loadMetas(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, m := range metas {
		total += m.Size
	}
	return total, nil
}

func (s *store) loadMetas(ctx context.Context, sessionID string) ([]entity.DocumentMeta, error) {
	raw, err := s.redisClient.Get(ctx, metaKeyPrefix+sessionID)
	if err != nil {
		if redis.IsNil(err) {
			return []entity.DocumentMeta{}, nil
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}

	var metas []entity.DocumentMeta
	if err := json.Unmarshal([]byte(raw), &metas); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	return metas, nil
}

func (s *store) saveMetas(ctx context.Context, sessionID string, metas []entity.DocumentMeta) error {
	raw, err := json.Marshal(metas)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	if err := s.redisClient.Set(ctx, metaKeyPrefix+sessionID, string(raw), s.config.Wizard.SessionTTL); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	return nil
}
