package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"connections/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// feedColumns hydrates a post row with author info and fresh aggregate
// counts; the viewer reaction subquery returns NULL for guests.
const feedColumns = `
		p.post_id, p.user_id, p.content, p.created_at,
		u.email, u.account_type,
		CASE WHEN u.account_type = 'personal' THEN CONCAT(pp.first_name, ' ', pp.last_name) ELSE op.organization_name END AS author_name,
		CASE WHEN u.account_type = 'personal' THEN pp.first_name ELSE op.organization_name END AS author_display_name,
		COALESCE((SELECT COUNT(*)::int FROM comments c WHERE c.post_id = p.post_id), 0) AS comments_count,
		COALESCE((SELECT COUNT(*)::int FROM reactions r WHERE r.post_id = p.post_id), 0) AS reactions_count,
		COALESCE((SELECT COUNT(*)::int FROM reactions r WHERE r.post_id = p.post_id AND r.reaction_type = 'like'), 0) AS likes_count,
		(SELECT r.reaction_type FROM reactions r WHERE r.post_id = p.post_id AND r.user_id = $1 LIMIT 1) AS viewer_reaction`

const feedJoins = `
	FROM posts p
	JOIN users u ON p.user_id = u.user_id
	LEFT JOIN personal_profiles pp ON u.user_id = pp.user_id AND u.account_type = 'personal'
	LEFT JOIN organization_profiles op ON u.user_id = op.user_id AND u.account_type = 'organization'`

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	post.CreatedAt = time.Now()

	query := `
		INSERT INTO posts (post_id, user_id, content, created_at)
		VALUES (:post_id, :user_id, :content, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *postRepository) AddMedia(ctx context.Context, postID string, media []models.PostMedia) error {
	query := `
		INSERT INTO post_media (media_id, post_id, url, media_type, sort_order, created_at)
		VALUES (:media_id, :post_id, :url, :media_type, :sort_order, :created_at)
	`

	for i := range media {
		media[i].MediaID = uuid.New().String()
		media[i].PostID = postID
		media[i].SortOrder = i
		media[i].CreatedAt = time.Now()

		_, err := r.db.NamedExecContext(ctx, query, &media[i])
		if err != nil {
			return fmt.Errorf("ошибка при сохранении медиа: %w", err)
		}
	}

	return nil
}

func (r *postRepository) GetFeed(ctx context.Context, viewerID *string) ([]models.FeedPost, error) {
	query := `SELECT ` + feedColumns + feedJoins + `
	ORDER BY p.created_at DESC`

	posts := []models.FeedPost{}
	err := r.db.SelectContext(ctx, &posts, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ленты: %w", err)
	}

	if err := r.attachMedia(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepository) GetFeedPostByID(ctx context.Context, postID string, viewerID *string) (*models.FeedPost, error) {
	query := `SELECT ` + feedColumns + feedJoins + `
	WHERE p.post_id = $2
	LIMIT 1`

	var post models.FeedPost
	err := r.db.GetContext(ctx, &post, query, viewerID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s не найден", postID)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	posts := []models.FeedPost{post}
	if err := r.attachMedia(ctx, posts); err != nil {
		return nil, err
	}

	return &posts[0], nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID string) ([]models.FeedPost, error) {
	query := `SELECT ` + feedColumns + feedJoins + `
	WHERE p.user_id = $2
	ORDER BY p.created_at DESC`

	posts := []models.FeedPost{}
	err := r.db.SelectContext(ctx, &posts, query, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов пользователя: %w", err)
	}

	if err := r.attachMedia(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// attachMedia fetches the ordered media rows for every post in one query.
func (r *postRepository) attachMedia(ctx context.Context, posts []models.FeedPost) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]string, 0, len(posts))
	for i := range posts {
		posts[i].Media = []models.PostMedia{}
		postIDs = append(postIDs, posts[i].PostID)
	}

	query := `
		SELECT * FROM post_media
		WHERE post_id = ANY($1)
		ORDER BY sort_order, created_at
	`

	var media []models.PostMedia
	err := r.db.SelectContext(ctx, &media, query, pq.Array(postIDs))
	if err != nil {
		return fmt.Errorf("ошибка при получении медиа постов: %w", err)
	}

	byPost := make(map[string][]models.PostMedia, len(posts))
	for _, m := range media {
		byPost[m.PostID] = append(byPost[m.PostID], m)
	}

	for i := range posts {
		if rows, ok := byPost[posts[i].PostID]; ok {
			posts[i].Media = rows
		}
	}

	return nil
}

func (r *postRepository) CreateShare(ctx context.Context, share *models.PostShare) error {
	share.ShareID = uuid.New().String()
	share.CreatedAt = time.Now()

	query := `
		INSERT INTO post_shares (share_id, post_id, user_id, shared_content, created_at)
		VALUES (:share_id, :post_id, :user_id, :shared_content, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, share)
	if err != nil {
		return fmt.Errorf("ошибка при создании репоста: %w", err)
	}

	return nil
}

func (r *postRepository) SavePost(ctx context.Context, postID, userID string) error {
	query := `
		INSERT INTO saved_posts (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении поста: %w", err)
	}

	return nil
}

func (r *postRepository) UnsavePost(ctx context.Context, postID, userID string) error {
	query := `DELETE FROM saved_posts WHERE post_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении из сохраненных: %w", err)
	}

	return nil
}
