package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"connections/internal/models"
)

func newPostServiceForTest() (PostService, *MockPostRepository, *MockCommentRepository, *recordingBroadcaster) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	broadcaster := &recordingBroadcaster{}

	svc := NewPostService(postRepo, commentRepo, nil, broadcaster, testConfig())

	return svc, postRepo, commentRepo, broadcaster
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Пост с текстом создаётся и уходит в broadcast", func(t *testing.T) {
		svc, postRepo, _, broadcaster := newPostServiceForTest()

		content := "Новый пост"
		viewerID := "user-1"

		hydrated := &models.FeedPost{
			PostID:     "post-1",
			UserID:     "user-1",
			Content:    &content,
			AuthorName: "Иван Петров",
			Media:      []models.PostMedia{},
		}

		postRepo.On("Create", ctx, mock.Anything).Return(nil)
		postRepo.On("GetFeedPostByID", ctx, mock.Anything, &viewerID).Return(hydrated, nil)

		post, err := svc.CreatePost(ctx, "user-1", &content, nil)

		require.NoError(t, err)
		assert.Equal(t, "post-1", post.PostID)

		require.Len(t, broadcaster.events, 1)
		assert.Equal(t, "post:created", broadcaster.events[0])

		postRepo.AssertNotCalled(t, "AddMedia", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Пост только с медиа тоже валиден", func(t *testing.T) {
		svc, postRepo, _, _ := newPostServiceForTest()

		viewerID := "user-1"
		media := []models.PostMedia{{URL: "https://cdn.example.com/a.jpg", MediaType: "image"}}

		postRepo.On("Create", ctx, mock.Anything).Return(nil)
		postRepo.On("AddMedia", ctx, mock.Anything, media).Return(nil)
		postRepo.On("GetFeedPostByID", ctx, mock.Anything, &viewerID).
			Return(&models.FeedPost{PostID: "post-2", UserID: "user-1", Media: media}, nil)

		post, err := svc.CreatePost(ctx, "user-1", nil, media)

		require.NoError(t, err)
		assert.Equal(t, "post-2", post.PostID)
	})

	t.Run("Пустой пост отклоняется", func(t *testing.T) {
		svc, postRepo, _, broadcaster := newPostServiceForTest()

		empty := "   "
		post, err := svc.CreatePost(ctx, "user-1", &empty, nil)

		assert.Error(t, err)
		assert.Nil(t, post)
		assert.Contains(t, err.Error(), "должен содержать")
		assert.Empty(t, broadcaster.events)

		postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPostService_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Комментарий создаётся и уходит в broadcast", func(t *testing.T) {
		svc, postRepo, commentRepo, broadcaster := newPostServiceForTest()

		userID := "user-1"

		postRepo.On("GetFeedPostByID", ctx, "post-1", (*string)(nil)).
			Return(&models.FeedPost{PostID: "post-1"}, nil)
		commentRepo.On("Create", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				comment := args.Get(1).(*models.Comment)
				comment.CommentID = "comment-1"
			}).
			Return(nil)
		commentRepo.On("GetByPostID", ctx, "post-1", &userID).
			Return([]models.FeedComment{
				{CommentID: "comment-1", PostID: "post-1", UserID: "user-1", Content: "Отлично", AuthorName: "Иван Петров"},
			}, nil)

		comment, err := svc.AddComment(ctx, "post-1", "user-1", "Отлично")

		require.NoError(t, err)
		assert.Equal(t, "comment-1", comment.CommentID)
		assert.Equal(t, "Иван Петров", comment.AuthorName)

		require.Len(t, broadcaster.events, 1)
		assert.Equal(t, "comment:created", broadcaster.events[0])

		payload := broadcaster.payloads[0].(commentCreatedPayload)
		assert.Equal(t, "post-1", payload.PostID)
		assert.Equal(t, "comment-1", payload.Comment.CommentID)
	})

	t.Run("Пустой комментарий отклоняется", func(t *testing.T) {
		svc, _, commentRepo, _ := newPostServiceForTest()

		comment, err := svc.AddComment(ctx, "post-1", "user-1", "   ")

		assert.Error(t, err)
		assert.Nil(t, comment)

		commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Комментарий к несуществующему посту", func(t *testing.T) {
		svc, postRepo, commentRepo, _ := newPostServiceForTest()

		postRepo.On("GetFeedPostByID", ctx, "missing", (*string)(nil)).
			Return(nil, assert.AnError)

		comment, err := svc.AddComment(ctx, "missing", "user-1", "текст")

		assert.Error(t, err)
		assert.Nil(t, comment)

		commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPostService_SharePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Репост создаётся и уходит в broadcast", func(t *testing.T) {
		svc, postRepo, _, broadcaster := newPostServiceForTest()

		sharedContent := "Смотрите"

		postRepo.On("GetFeedPostByID", ctx, "post-1", (*string)(nil)).
			Return(&models.FeedPost{PostID: "post-1"}, nil)
		postRepo.On("CreateShare", ctx, mock.Anything).Return(nil)

		share, err := svc.SharePost(ctx, "post-1", "user-1", &sharedContent)

		require.NoError(t, err)
		assert.Equal(t, "post-1", share.PostID)
		assert.Equal(t, "user-1", share.UserID)

		require.Len(t, broadcaster.events, 1)
		assert.Equal(t, "post:shared", broadcaster.events[0])

		payload := broadcaster.payloads[0].(postSharedPayload)
		assert.Equal(t, "post-1", payload.PostID)
		assert.Equal(t, "user-1", payload.UserID)
	})
}

func TestPostService_UploadMedia(t *testing.T) {
	ctx := context.Background()

	newServiceWithStorage := func(maxSize int64) (PostService, *MockStorage) {
		store := new(MockStorage)
		cfg := testConfig()
		cfg.MaxUploadSize = maxSize
		svc := NewPostService(new(MockPostRepository), new(MockCommentRepository), store, &recordingBroadcaster{}, cfg)
		return svc, store
	}

	t.Run("Успешная загрузка изображения", func(t *testing.T) {
		svc, store := newServiceWithStorage(1024)

		file := strings.NewReader("data")
		store.On("UploadMedia", ctx, "user-1", "photo.jpg", file, int64(4)).
			Return("user-1/photo.jpg", "https://cdn.example.com/user-1/photo.jpg", nil)

		url, mediaType, err := svc.UploadMedia(ctx, "user-1", "photo.jpg", "image/jpeg", file, 4)

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/user-1/photo.jpg", url)
		assert.Equal(t, "image", mediaType)
	})

	t.Run("Неподдерживаемый тип файла", func(t *testing.T) {
		svc, store := newServiceWithStorage(1024)

		_, _, err := svc.UploadMedia(ctx, "user-1", "doc.pdf", "application/pdf", strings.NewReader("data"), 4)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "неподдерживаемый тип файла")

		store.AssertNotCalled(t, "UploadMedia", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Файл превышает лимит", func(t *testing.T) {
		svc, store := newServiceWithStorage(10)

		_, _, err := svc.UploadMedia(ctx, "user-1", "video.mp4", "video/mp4", strings.NewReader("data"), 100)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "слишком большой")

		store.AssertNotCalled(t, "UploadMedia", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
