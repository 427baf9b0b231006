package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"connections/internal/models"
	"connections/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, email, newPassword string) error {
	args := m.Called(ctx, email, newPassword)
	return args.Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetPersonalProfile(ctx context.Context, userID string) (*models.PersonalProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PersonalProfile), args.Error(1)
}

func (m *MockProfileRepository) GetOrganizationProfile(ctx context.Context, userID string) (*models.OrganizationProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrganizationProfile), args.Error(1)
}

func (m *MockProfileRepository) CreatePersonalProfile(ctx context.Context, profile *models.PersonalProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) CreateOrganizationProfile(ctx context.Context, profile *models.OrganizationProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdatePersonalProfile(ctx context.Context, profile *models.PersonalProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateOrganizationProfile(ctx context.Context, profile *models.OrganizationProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockOTPRepository struct {
	mock.Mock
}

func (m *MockOTPRepository) Issue(ctx context.Context, kind repository.OTPKind, email, code string, expiresAt time.Time) error {
	args := m.Called(ctx, kind, email, code, expiresAt)
	return args.Error(0)
}

func (m *MockOTPRepository) Consume(ctx context.Context, kind repository.OTPKind, email, code string) error {
	args := m.Called(ctx, kind, email, code)
	return args.Error(0)
}

func (m *MockOTPRepository) DeleteAll(ctx context.Context, kind repository.OTPKind, email string) error {
	args := m.Called(ctx, kind, email)
	return args.Error(0)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Blacklist(ctx context.Context, token string, expiresAt time.Time) error {
	args := m.Called(ctx, token, expiresAt)
	return args.Error(0)
}

func (m *MockTokenRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) UpsertPostReaction(ctx context.Context, postID, userID, reactionType string) error {
	args := m.Called(ctx, postID, userID, reactionType)
	return args.Error(0)
}

func (m *MockReactionRepository) DeletePostReaction(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockReactionRepository) CountPostReactions(ctx context.Context, postID string) (int, int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockReactionRepository) UpsertCommentReaction(ctx context.Context, commentID, userID, reactionType string) error {
	args := m.Called(ctx, commentID, userID, reactionType)
	return args.Error(0)
}

func (m *MockReactionRepository) DeleteCommentReaction(ctx context.Context, commentID, userID string) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

func (m *MockReactionRepository) CountCommentLikes(ctx context.Context, commentID string) (int, error) {
	args := m.Called(ctx, commentID)
	return args.Int(0), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) AddMedia(ctx context.Context, postID string, media []models.PostMedia) error {
	args := m.Called(ctx, postID, media)
	return args.Error(0)
}

func (m *MockPostRepository) GetFeed(ctx context.Context, viewerID *string) ([]models.FeedPost, error) {
	args := m.Called(ctx, viewerID)
	return args.Get(0).([]models.FeedPost), args.Error(1)
}

func (m *MockPostRepository) GetFeedPostByID(ctx context.Context, postID string, viewerID *string) (*models.FeedPost, error) {
	args := m.Called(ctx, postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeedPost), args.Error(1)
}

func (m *MockPostRepository) GetByUserID(ctx context.Context, userID string) ([]models.FeedPost, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.FeedPost), args.Error(1)
}

func (m *MockPostRepository) CreateShare(ctx context.Context, share *models.PostShare) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockPostRepository) SavePost(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockPostRepository) UnsavePost(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByPostID(ctx context.Context, postID string, viewerID *string) ([]models.FeedComment, error) {
	args := m.Called(ctx, postID, viewerID)
	return args.Get(0).([]models.FeedComment), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationEmail(email, otp string) error {
	args := m.Called(email, otp)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordResetEmail(email, otp string) error {
	args := m.Called(email, otp)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadMedia(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, userID, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteMedia(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

// recordingBroadcaster captures emitted events for assertions.
type recordingBroadcaster struct {
	events   []string
	payloads []interface{}
}

func (b *recordingBroadcaster) Emit(event string, payload interface{}) {
	b.events = append(b.events, event)
	b.payloads = append(b.payloads, payload)
}
