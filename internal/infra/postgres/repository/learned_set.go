package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/auslan-bot/internal/infra/postgres"
	"github.com/aliskhannn/auslan-bot/internal/repository"
)

// LearnedSetRepository stores serialized learned sets keyed by storage key.
type LearnedSetRepository struct {
	db postgres.DBTX
}

// NewLearnedSetRepository creates a new LearnedSetRepository with the provided database handle.
func NewLearnedSetRepository(db postgres.DBTX) *LearnedSetRepository {
	return &LearnedSetRepository{db: db}
}

// Get returns the raw payload stored under key.
func (r *LearnedSetRepository) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT payload FROM learned_sets WHERE storage_key = $1`

	var payload string
	err := r.db.QueryRow(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repository.ErrKeyNotFound
		}
		return "", fmt.Errorf("get learned set: %w", err)
	}

	return payload, nil
}

// Set creates or replaces the payload stored under key.
func (r *LearnedSetRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO learned_sets (storage_key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (storage_key) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("set learned set: %w", err)
	}

	return nil
}

// Delete removes every listed key.
func (r *LearnedSetRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM learned_sets WHERE storage_key = ANY($1)`, keys); err != nil {
		return fmt.Errorf("delete learned sets: %w", err)
	}

	return nil
}
