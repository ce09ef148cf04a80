package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/apperr"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/model"
)

// UserRepository provides read-only profile lookups. User accounts are owned
// by the platform's user system; this service only hydrates display data.
type UserRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a user's display snapshot.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (model.UserSnapshot, error) {
	query := `SELECT id, name, COALESCE(avatar_url, '') AS avatar_url FROM users WHERE id = $1`

	var u model.UserSnapshot
	err := r.db.GetContext(ctx, &u, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserSnapshot{}, fmt.Errorf("user %d: %w", userID, apperr.ErrNotFound)
		}
		r.logger.Error("Failed to get user", zap.Int64("user_id", userID), zap.Error(err))
		return model.UserSnapshot{}, fmt.Errorf("get user: %w", apperr.ErrTransientStore)
	}

	return u, nil
}
