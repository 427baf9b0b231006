package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"connections/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.CommentID = uuid.New().String()
	comment.CreatedAt = time.Now()

	query := `
		INSERT INTO comments (comment_id, post_id, user_id, content, created_at)
		VALUES (:comment_id, :post_id, :user_id, :content, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

// GetByPostID returns comments oldest first, with author name and the
// viewer's own reaction (NULL for guests).
func (r *commentRepository) GetByPostID(ctx context.Context, postID string, viewerID *string) ([]models.FeedComment, error) {
	query := `
		SELECT
		c.comment_id, c.post_id, c.user_id, c.content, c.created_at,
		u.email, u.account_type,
		CASE WHEN u.account_type = 'personal' THEN CONCAT(pp.first_name, ' ', pp.last_name) ELSE op.organization_name END AS author_name,
		COALESCE((SELECT COUNT(*)::int FROM comment_reactions cr WHERE cr.comment_id = c.comment_id AND cr.reaction_type = 'like'), 0) AS likes_count,
		(SELECT cr.reaction_type FROM comment_reactions cr WHERE cr.comment_id = c.comment_id AND cr.user_id = $1 LIMIT 1) AS viewer_reaction
	FROM comments c
	JOIN users u ON c.user_id = u.user_id
	LEFT JOIN personal_profiles pp ON u.user_id = pp.user_id AND u.account_type = 'personal'
	LEFT JOIN organization_profiles op ON u.user_id = op.user_id AND u.account_type = 'organization'
	WHERE c.post_id = $2
	ORDER BY c.created_at ASC
	`

	comments := []models.FeedComment{}
	err := r.db.SelectContext(ctx, &comments, query, viewerID, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}
