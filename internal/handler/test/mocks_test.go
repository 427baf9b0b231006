package test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"connections/internal/models"
	"connections/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RegisterInit(ctx context.Context, email, password, accountType string) (*service.RegisterInitResult, error) {
	args := m.Called(ctx, email, password, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RegisterInitResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) SendVerificationOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) VerifyEmailOTP(ctx context.Context, email, otp string) (*models.User, string, error) {
	args := m.Called(ctx, email, otp)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) CheckEmail(ctx context.Context, email string) (bool, string, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) SendPasswordResetOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) VerifyPasswordResetOTP(ctx context.Context, email, otp string) (string, error) {
	args := m.Called(ctx, email, otp)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	args := m.Called(ctx, resetToken, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) GenerateSessionToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) RunBlacklistSweep(ctx context.Context) {
	m.Called(ctx)
}

type MockOAuthService struct {
	mock.Mock
}

func (m *MockOAuthService) GoogleLogin(ctx context.Context, code string) (*service.SocialLoginResult, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SocialLoginResult), args.Error(1)
}

func (m *MockOAuthService) FacebookLogin(ctx context.Context, accessToken string) (*service.SocialLoginResult, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SocialLoginResult), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, userID string, content *string, media []models.PostMedia) (*models.FeedPost, error) {
	args := m.Called(ctx, userID, content, media)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeedPost), args.Error(1)
}

func (m *MockPostService) GetFeed(ctx context.Context, viewerID *string) ([]models.FeedPost, error) {
	args := m.Called(ctx, viewerID)
	return args.Get(0).([]models.FeedPost), args.Error(1)
}

func (m *MockPostService) GetUserPosts(ctx context.Context, userID string) ([]models.FeedPost, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.FeedPost), args.Error(1)
}

func (m *MockPostService) AddComment(ctx context.Context, postID, userID, content string) (*models.FeedComment, error) {
	args := m.Called(ctx, postID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeedComment), args.Error(1)
}

func (m *MockPostService) GetComments(ctx context.Context, postID string, viewerID *string) ([]models.FeedComment, error) {
	args := m.Called(ctx, postID, viewerID)
	return args.Get(0).([]models.FeedComment), args.Error(1)
}

func (m *MockPostService) SharePost(ctx context.Context, postID, userID string, sharedContent *string) (*models.PostShare, error) {
	args := m.Called(ctx, postID, userID, sharedContent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostShare), args.Error(1)
}

func (m *MockPostService) SavePost(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockPostService) UnsavePost(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockPostService) UploadMedia(ctx context.Context, userID, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, userID, fileName, contentType, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

type MockReactionService struct {
	mock.Mock
}

func (m *MockReactionService) ReactToPost(ctx context.Context, postID, userID, reactionType string) (*service.ReactionCounts, error) {
	args := m.Called(ctx, postID, userID, reactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReactionCounts), args.Error(1)
}

func (m *MockReactionService) RemovePostReaction(ctx context.Context, postID, userID string) (*service.ReactionCounts, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReactionCounts), args.Error(1)
}

func (m *MockReactionService) ReactToComment(ctx context.Context, commentID, userID, reactionType string) (int, error) {
	args := m.Called(ctx, commentID, userID, reactionType)
	return args.Int(0), args.Error(1)
}

func (m *MockReactionService) RemoveCommentReaction(ctx context.Context, commentID, userID string) (int, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Int(0), args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*service.ProfileView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProfileView), args.Error(1)
}

func (m *MockProfileService) UpdatePersonalProfile(ctx context.Context, userID string, profile *models.PersonalProfile) (*models.PersonalProfile, error) {
	args := m.Called(ctx, userID, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PersonalProfile), args.Error(1)
}

func (m *MockProfileService) UpdateOrganizationProfile(ctx context.Context, userID string, profile *models.OrganizationProfile) (*models.OrganizationProfile, error) {
	args := m.Called(ctx, userID, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrganizationProfile), args.Error(1)
}
