package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"connections/internal/config"
	"connections/internal/models"
	"connections/internal/repository"
	"connections/internal/storage"
)

type PostService interface {
	CreatePost(ctx context.Context, userID string, content *string, media []models.PostMedia) (*models.FeedPost, error)
	GetFeed(ctx context.Context, viewerID *string) ([]models.FeedPost, error)
	GetUserPosts(ctx context.Context, userID string) ([]models.FeedPost, error)
	AddComment(ctx context.Context, postID, userID, content string) (*models.FeedComment, error)
	GetComments(ctx context.Context, postID string, viewerID *string) ([]models.FeedComment, error)
	SharePost(ctx context.Context, postID, userID string, sharedContent *string) (*models.PostShare, error)
	SavePost(ctx context.Context, postID, userID string) error
	UnsavePost(ctx context.Context, postID, userID string) error
	UploadMedia(ctx context.Context, userID, fileName, contentType string, file io.Reader, size int64) (string, string, error)
}

type commentCreatedPayload struct {
	PostID  string              `json:"postId"`
	Comment *models.FeedComment `json:"comment"`
}

type postSharedPayload struct {
	PostID string `json:"postId"`
	UserID string `json:"userId"`
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	store       storage.Storage
	broadcaster Broadcaster
	cfg         *config.Config
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, store storage.Storage, broadcaster Broadcaster, cfg *config.Config) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		store:       store,
		broadcaster: broadcaster,
		cfg:         cfg,
	}
}

func (s *postService) CreatePost(ctx context.Context, userID string, content *string, media []models.PostMedia) (*models.FeedPost, error) {
	hasContent := content != nil && strings.TrimSpace(*content) != ""
	if !hasContent && len(media) == 0 {
		return nil, fmt.Errorf("пост должен содержать текст или медиа")
	}

	post := &models.Post{
		UserID:  userID,
		Content: content,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if len(media) > 0 {
		if err := s.postRepo.AddMedia(ctx, post.PostID, media); err != nil {
			return nil, err
		}
	}

	// re-read through the feed query so counts and author info match
	// what every other reader sees
	feedPost, err := s.postRepo.GetFeedPostByID(ctx, post.PostID, &userID)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Emit("post:created", feedPost)

	return feedPost, nil
}

func (s *postService) GetFeed(ctx context.Context, viewerID *string) ([]models.FeedPost, error) {
	return s.postRepo.GetFeed(ctx, viewerID)
}

func (s *postService) GetUserPosts(ctx context.Context, userID string) ([]models.FeedPost, error) {
	return s.postRepo.GetByUserID(ctx, userID)
}

func (s *postService) AddComment(ctx context.Context, postID, userID, content string) (*models.FeedComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("комментарий не может быть пустым")
	}

	if _, err := s.postRepo.GetFeedPostByID(ctx, postID, nil); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetByPostID(ctx, postID, &userID)
	if err != nil {
		return nil, err
	}

	var created *models.FeedComment
	for i := range comments {
		if comments[i].CommentID == comment.CommentID {
			created = &comments[i]
			break
		}
	}
	if created == nil {
		return nil, fmt.Errorf("ошибка при получении комментария")
	}

	s.broadcaster.Emit("comment:created", commentCreatedPayload{PostID: postID, Comment: created})

	return created, nil
}

func (s *postService) GetComments(ctx context.Context, postID string, viewerID *string) ([]models.FeedComment, error) {
	return s.commentRepo.GetByPostID(ctx, postID, viewerID)
}

func (s *postService) SharePost(ctx context.Context, postID, userID string, sharedContent *string) (*models.PostShare, error) {
	if _, err := s.postRepo.GetFeedPostByID(ctx, postID, nil); err != nil {
		return nil, err
	}

	share := &models.PostShare{
		PostID:        postID,
		UserID:        userID,
		SharedContent: sharedContent,
	}

	if err := s.postRepo.CreateShare(ctx, share); err != nil {
		return nil, err
	}

	s.broadcaster.Emit("post:shared", postSharedPayload{PostID: postID, UserID: userID})

	return share, nil
}

func (s *postService) SavePost(ctx context.Context, postID, userID string) error {
	if _, err := s.postRepo.GetFeedPostByID(ctx, postID, nil); err != nil {
		return err
	}
	return s.postRepo.SavePost(ctx, postID, userID)
}

func (s *postService) UnsavePost(ctx context.Context, postID, userID string) error {
	return s.postRepo.UnsavePost(ctx, postID, userID)
}

func (s *postService) UploadMedia(ctx context.Context, userID, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	mediaType, ok := storage.MediaTypeFromContentType(contentType)
	if !ok {
		return "", "", fmt.Errorf("неподдерживаемый тип файла: %s", contentType)
	}

	if size > s.cfg.MaxUploadSize {
		return "", "", fmt.Errorf("файл слишком большой")
	}

	_, publicURL, err := s.store.UploadMedia(ctx, userID, fileName, file, size)
	if err != nil {
		return "", "", err
	}

	return publicURL, mediaType, nil
}
