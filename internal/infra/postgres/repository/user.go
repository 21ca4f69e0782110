package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
	"github.com/aliskhannn/auslan-bot/internal/infra/postgres"
	"github.com/aliskhannn/auslan-bot/internal/repository"
)

const (
	// xmax is zero only for freshly inserted rows.
	upsertLearnerQuery = `
		INSERT INTO users (id, chat_id, first_name, username, is_active, created_at)
		VALUES (@id, @chat_id, @first_name, @username, @is_active, @created_at)
		ON CONFLICT (id) DO UPDATE SET
			chat_id    = EXCLUDED.chat_id,
			first_name = EXCLUDED.first_name,
			username   = EXCLUDED.username,
			is_active  = EXCLUDED.is_active
		RETURNING (xmax = 0)`

	learnerExistsQuery = `SELECT EXISTS(SELECT 1 FROM users WHERE id = @id)`

	selectLearnerQuery = `
		SELECT id, chat_id, first_name, username, is_active, created_at
		FROM users
		WHERE id = @id`
)

// UserRepository stores learners in the users table.
type UserRepository struct {
	db postgres.DBTX
}

func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Save upserts user. The bool is true when the row did not exist before.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (bool, error) {
	args := pgx.NamedArgs{
		"id":         user.ID,
		"chat_id":    user.ChatID,
		"first_name": user.FirstName,
		"username":   user.Username,
		"is_active":  user.IsActive,
		"created_at": user.CreatedAt,
	}

	var inserted bool
	if err := r.db.QueryRow(ctx, upsertLearnerQuery, args).Scan(&inserted); err != nil {
		return false, fmt.Errorf("upsert learner %d: %w", user.ID, err)
	}
	return inserted, nil
}

func (r *UserRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, learnerExistsQuery, pgx.NamedArgs{"id": userID}).Scan(&exists); err != nil {
		return false, fmt.Errorf("lookup learner %d: %w", userID, err)
	}
	return exists, nil
}

// GetByID loads a learner, returning repository.ErrUserNotFound when absent.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	u := new(entities.User)
	err := r.db.QueryRow(ctx, selectLearnerQuery, pgx.NamedArgs{"id": userID}).
		Scan(&u.ID, &u.ChatID, &u.FirstName, &u.Username, &u.IsActive, &u.CreatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("learner %d: %w", userID, repository.ErrUserNotFound)
	case err != nil:
		return nil, fmt.Errorf("load learner %d: %w", userID, err)
	}
	return u, nil
}
