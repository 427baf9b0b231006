package models

import (
	"time"
)

type User struct {
	UserID        string    `json:"id" db:"user_id"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	AccountType   string    `json:"account_type" db:"account_type"`
	AuthProvider  string    `json:"auth_provider" db:"auth_provider"`
	EmailVerified bool      `json:"email_verified" db:"email_verified"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type PersonalProfile struct {
	ProfileID   string     `json:"id" db:"profile_id"`
	UserID      string     `json:"user_id" db:"user_id"`
	FirstName   string     `json:"first_name" db:"first_name"`
	LastName    string     `json:"last_name" db:"last_name"`
	PhoneNumber *string    `json:"phone_number" db:"phone_number"`
	Gender      *string    `json:"gender" db:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth" db:"date_of_birth"`
	Bio         *string    `json:"bio" db:"bio"`
	Location    *string    `json:"location" db:"location"`
	Website     *string    `json:"website" db:"website"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type OrganizationProfile struct {
	ProfileID        string    `json:"id" db:"profile_id"`
	UserID           string    `json:"user_id" db:"user_id"`
	OrganizationName string    `json:"organization_name" db:"organization_name"`
	Description      *string   `json:"description" db:"description"`
	Industry         *string   `json:"industry" db:"industry"`
	FoundedYear      *int      `json:"founded_year" db:"founded_year"`
	Location         *string   `json:"location" db:"location"`
	Website          *string   `json:"website" db:"website"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

type Post struct {
	PostID    string      `json:"id" db:"post_id"`
	UserID    string      `json:"user_id" db:"user_id"`
	Content   *string     `json:"content" db:"content"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	Media     []PostMedia `json:"media" db:"-"`
}

type PostMedia struct {
	MediaID   string    `json:"-" db:"media_id"`
	PostID    string    `json:"-" db:"post_id"`
	URL       string    `json:"url" db:"url"`
	MediaType string    `json:"type" db:"media_type"`
	SortOrder int       `json:"-" db:"sort_order"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

// FeedPost is a post hydrated with author info, aggregate counts
// and the viewer's own reaction.
type FeedPost struct {
	PostID            string      `json:"id" db:"post_id"`
	UserID            string      `json:"user_id" db:"user_id"`
	Content           *string     `json:"content" db:"content"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
	Email             string      `json:"email" db:"email"`
	AccountType       string      `json:"account_type" db:"account_type"`
	AuthorName        string      `json:"author_name" db:"author_name"`
	AuthorDisplayName string      `json:"author_display_name" db:"author_display_name"`
	CommentsCount     int         `json:"comments_count" db:"comments_count"`
	ReactionsCount    int         `json:"reactions_count" db:"reactions_count"`
	LikesCount        int         `json:"likes_count" db:"likes_count"`
	ViewerReaction    *string     `json:"viewer_reaction" db:"viewer_reaction"`
	Media             []PostMedia `json:"media" db:"-"`
}

type Reaction struct {
	ReactionID   string    `json:"id" db:"reaction_id"`
	PostID       string    `json:"post_id" db:"post_id"`
	UserID       string    `json:"user_id" db:"user_id"`
	ReactionType string    `json:"reaction_type" db:"reaction_type"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type CommentReaction struct {
	ReactionID   string    `json:"id" db:"reaction_id"`
	CommentID    string    `json:"comment_id" db:"comment_id"`
	UserID       string    `json:"user_id" db:"user_id"`
	ReactionType string    `json:"reaction_type" db:"reaction_type"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Comment struct {
	CommentID string    `json:"id" db:"comment_id"`
	PostID    string    `json:"post_id" db:"post_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FeedComment is a comment hydrated with author info and like count.
type FeedComment struct {
	CommentID      string    `json:"id" db:"comment_id"`
	PostID         string    `json:"post_id" db:"post_id"`
	UserID         string    `json:"user_id" db:"user_id"`
	Content        string    `json:"content" db:"content"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	Email          string    `json:"email" db:"email"`
	AccountType    string    `json:"account_type" db:"account_type"`
	AuthorName     string    `json:"author_name" db:"author_name"`
	LikesCount     int       `json:"likes_count" db:"likes_count"`
	ViewerReaction *string   `json:"viewer_reaction" db:"viewer_reaction"`
}

type PostShare struct {
	ShareID       string    `json:"id" db:"share_id"`
	PostID        string    `json:"post_id" db:"post_id"`
	UserID        string    `json:"user_id" db:"user_id"`
	SharedContent *string   `json:"shared_content" db:"shared_content"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// OTP covers both verification and password-reset codes, the kind
// selects the table.
type OTP struct {
	OTPID     string    `json:"id" db:"otp_id"`
	Email     string    `json:"email" db:"email"`
	Code      string    `json:"otp" db:"otp"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Used      bool      `json:"used" db:"used"`
}
