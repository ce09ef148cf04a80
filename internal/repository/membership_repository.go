package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/apperr"
)

// MembershipRepository resolves broadcast-style dispatch targets to concrete
// user ids. Reads reflect membership at call time; later membership changes
// never affect notifications already created.
type MembershipRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *sqlx.DB, logger *zap.Logger) *MembershipRepository {
	return &MembershipRepository{
		db:     db,
		logger: logger,
	}
}

// ProjectMemberIDs returns the ids of every current member of a project.
func (r *MembershipRepository) ProjectMemberIDs(ctx context.Context, projectID int64) ([]int64, error) {
	query := `SELECT user_id FROM project_members WHERE project_id = $1`

	ids := []int64{}
	err := r.db.SelectContext(ctx, &ids, query, projectID)
	if err != nil {
		r.logger.Error("Failed to resolve project members", zap.Int64("project_id", projectID), zap.Error(err))
		return nil, fmt.Errorf("resolve project members: %w", apperr.ErrTransientStore)
	}

	return ids, nil
}

// PostParticipantIDs returns the ids of everyone who participated in a post.
func (r *MembershipRepository) PostParticipantIDs(ctx context.Context, postID int64) ([]int64, error) {
	query := `SELECT user_id FROM post_participants WHERE post_id = $1`

	ids := []int64{}
	err := r.db.SelectContext(ctx, &ids, query, postID)
	if err != nil {
		r.logger.Error("Failed to resolve post participants", zap.Int64("post_id", postID), zap.Error(err))
		return nil, fmt.Errorf("resolve post participants: %w", apperr.ErrTransientStore)
	}

	return ids, nil
}
