package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"signpubliq/internal/config"
	"signpubliq/internal/domain/entity"
	"signpubliq/internal/domain/repository"
	"signpubliq/internal/infrastructure/redis"
	"signpubliq/internal/wizard"
)

const (
	sessionKeyPrefix = "signpubliq:session:"
	writerKeyPrefix  = "signpubliq:session-writer:"
)

type sessionRepository struct {
	config      *config.Config
	redisClient *redis.RedisClient
	logger      *zap.Logger
}

func NewSessionRepository(cfg *config.Config, redisClient *redis.RedisClient, logger *zap.Logger) repository.SessionRepository {
	return &sessionRepository{
		config:      cfg,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (r *sessionRepository) Save(ctx context.Context, s *wizard.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	if err := r.redisClient.Set(ctx, sessionKeyPrefix+s.ID, string(raw), r.config.Wizard.SessionTTL); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*wizard.Session, error) {
	raw, err := r.redisClient.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		if redis.IsNil(err) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}

	var s wizard.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.redisClient.Del(ctx, sessionKeyPrefix+id, writerKeyPrefix+id); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	return nil
}

// Acquire claims the session for one writer. Two tabs against the
// same session is not a supported mode; the first claim wins and the
// second caller is told the session is locked.
func (r *sessionRepository) Acquire(ctx context.Context, id, writer string) (bool, error) {
	ok, err := r.redisClient.SetNX(ctx, writerKeyPrefix+id, writer, r.config.Wizard.SessionTTL)
	if err != nil {
		return false, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	return ok, nil
}

func (r *sessionRepository) Writer(ctx context.Context, id string) (string, error) {
	w, err := r.redisClient.Get(ctx, writerKeyPrefix+id)
	if err != nil {
		if redis.IsNil(err) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	return w, nil
}

func (r *sessionRepository) Release(ctx context.Context, id, writer string) error {
	current, err := r.Writer(ctx, id)
	if err != nil {
		return err
	}
	if current != writer {
		return nil
	}
	if err := r.redisClient.Del(ctx, writerKeyPrefix+id); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	return nil
}
