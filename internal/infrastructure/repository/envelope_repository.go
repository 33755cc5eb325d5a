package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"signpubliq/internal/domain/entity"
	"signpubliq/internal/domain/repository"
	"signpubliq/internal/infrastructure/database"
)

type envelopeRepository struct {
	db     *database.Database
	logger *zap.Logger
}

func NewEnvelopeRepository(db *database.Database, logger *zap.Logger) repository.EnvelopeRepository {
	return &envelopeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *envelopeRepository) Insert(ctx context.Context, snapshot *entity.EnvelopeSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO envelopes (id, name, status, owner, shared_with, snapshot, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.DB.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.Name,
		string(snapshot.Status),
		snapshot.Owner,
		strings.Join(snapshot.SharedWith(), ","),
		raw,
		snapshot.CreatedAt,
		snapshot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert envelope: %w", err)
	}

	r.logger.Info("Envelope record stored",
		zap.String("envelope_id", snapshot.ID),
		zap.String("status", string(snapshot.Status)),
	)
	return nil
}

func (r *envelopeRepository) List(ctx context.Context, filter repository.EnvelopeFilter) ([]entity.EnvelopeSnapshot, error) {
	query := `SELECT snapshot FROM envelopes`
	conds := []string{}
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR shared_with ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list envelopes: %w", err)
	}
	defer rows.Close()

	envelopes := []entity.EnvelopeSnapshot{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan envelope: %w", err)
		}
		var snapshot entity.EnvelopeSnapshot
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to decode envelope: %w", err)
		}
		envelopes = append(envelopes, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read envelopes: %w", err)
	}
	return envelopes, nil
}

func (r *envelopeRepository) CountByStatus(ctx context.Context) (map[entity.EnvelopeStatus]int, error) {
	rows, err := r.db.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM envelopes GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count envelopes: %w", err)
	}
	defer rows.Close()

	counts := map[entity.EnvelopeStatus]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[entity.EnvelopeStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read counts: %w", err)
	}
	return counts, nil
}
