package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"connections/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	MarkEmailVerified(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, email, newPassword string) error
}

type ProfileRepository interface {
	GetPersonalProfile(ctx context.Context, userID string) (*models.PersonalProfile, error)
	GetOrganizationProfile(ctx context.Context, userID string) (*models.OrganizationProfile, error)
	CreatePersonalProfile(ctx context.Context, profile *models.PersonalProfile) error
	CreateOrganizationProfile(ctx context.Context, profile *models.OrganizationProfile) error
	UpdatePersonalProfile(ctx context.Context, profile *models.PersonalProfile) error
	UpdateOrganizationProfile(ctx context.Context, profile *models.OrganizationProfile) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	AddMedia(ctx context.Context, postID string, media []models.PostMedia) error
	GetFeed(ctx context.Context, viewerID *string) ([]models.FeedPost, error)
	GetFeedPostByID(ctx context.Context, postID string, viewerID *string) (*models.FeedPost, error)
	GetByUserID(ctx context.Context, userID string) ([]models.FeedPost, error)
	CreateShare(ctx context.Context, share *models.PostShare) error
	SavePost(ctx context.Context, postID, userID string) error
	UnsavePost(ctx context.Context, postID, userID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByPostID(ctx context.Context, postID string, viewerID *string) ([]models.FeedComment, error)
}

type ReactionRepository interface {
	UpsertPostReaction(ctx context.Context, postID, userID, reactionType string) error
	DeletePostReaction(ctx context.Context, postID, userID string) error
	CountPostReactions(ctx context.Context, postID string) (total int, likes int, err error)
	UpsertCommentReaction(ctx context.Context, commentID, userID, reactionType string) error
	DeleteCommentReaction(ctx context.Context, commentID, userID string) error
	CountCommentLikes(ctx context.Context, commentID string) (int, error)
}

// OTPKind selects which OTP table a call works against.
type OTPKind string

const (
	OTPVerification  OTPKind = "email_verification_otps"
	OTPPasswordReset OTPKind = "password_reset_otps"
)

type OTPRepository interface {
	// Issue deletes every previous code for the email and stores a new one.
	Issue(ctx context.Context, kind OTPKind, email, code string, expiresAt time.Time) error
	// Consume marks the matching unused, unexpired code as used.
	Consume(ctx context.Context, kind OTPKind, email, code string) error
	DeleteAll(ctx context.Context, kind OTPKind, email string) error
}

type TokenRepository interface {
	Blacklist(ctx context.Context, token string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type Repository struct {
	User     UserRepository
	Profile  ProfileRepository
	Post     PostRepository
	Comment  CommentRepository
	Reaction ReactionRepository
	OTP      OTPRepository
	Token    TokenRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Profile:  NewProfileRepository(db),
		Post:     NewPostRepository(db),
		Comment:  NewCommentRepository(db),
		Reaction: NewReactionRepository(db),
		OTP:      NewOTPRepository(db),
		Token:    NewTokenRepository(db),
	}
}
