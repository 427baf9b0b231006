package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type reactionRepository struct {
	db *sqlx.DB
}

func NewReactionRepository(db *sqlx.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// UpsertPostReaction records the user's current reaction to a post.
// The (post_id, user_id) unique key makes a repeat reaction overwrite
// the previous type instead of adding a row.
func (r *reactionRepository) UpsertPostReaction(ctx context.Context, postID, userID, reactionType string) error {
	query := `
		INSERT INTO reactions (reaction_id, post_id, user_id, reaction_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (post_id, user_id)
		DO UPDATE SET reaction_type = EXCLUDED.reaction_type, created_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), postID, userID, reactionType)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении реакции: %w", err)
	}

	return nil
}

// DeletePostReaction removes the user's reaction; deleting a missing
// reaction is a no-op.
func (r *reactionRepository) DeletePostReaction(ctx context.Context, postID, userID string) error {
	query := `DELETE FROM reactions WHERE post_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении реакции: %w", err)
	}

	return nil
}

func (r *reactionRepository) CountPostReactions(ctx context.Context, postID string) (int, int, error) {
	var total int

	query := `SELECT COUNT(*)::int FROM reactions WHERE post_id = $1`

	err := r.db.GetContext(ctx, &total, query, postID)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка при подсчёте реакций: %w", err)
	}

	var likes int

	queryLikes := `SELECT COUNT(*)::int FROM reactions WHERE post_id = $1 AND reaction_type = 'like'`

	err = r.db.GetContext(ctx, &likes, queryLikes, postID)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка при подсчёте лайков: %w", err)
	}

	return total, likes, nil
}

func (r *reactionRepository) UpsertCommentReaction(ctx context.Context, commentID, userID, reactionType string) error {
	query := `
		INSERT INTO comment_reactions (reaction_id, comment_id, user_id, reaction_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (comment_id, user_id)
		DO UPDATE SET reaction_type = EXCLUDED.reaction_type, created_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), commentID, userID, reactionType)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении реакции на комментарий: %w", err)
	}

	return nil
}

func (r *reactionRepository) DeleteCommentReaction(ctx context.Context, commentID, userID string) error {
	query := `DELETE FROM comment_reactions WHERE comment_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, commentID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении реакции на комментарий: %w", err)
	}

	return nil
}

func (r *reactionRepository) CountCommentLikes(ctx context.Context, commentID string) (int, error) {
	var likes int

	query := `SELECT COUNT(*)::int FROM comment_reactions WHERE comment_id = $1 AND reaction_type = 'like'`

	err := r.db.GetContext(ctx, &likes, query, commentID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте лайков комментария: %w", err)
	}

	return likes, nil
}
