package service

import (
	"context"
	"fmt"
	"strings"

	"connections/internal/repository"
)

// ReactionCounts is what post reaction endpoints return. ReactionType
// echoes the stored label, nil after a removal.
type ReactionCounts struct {
	ReactionType *string `json:"reaction_type"`
	LikesCount   int     `json:"likesCount"`
	TotalCount   int     `json:"totalCount"`
}

type reactionUpdatedPayload struct {
	PostID       string  `json:"postId"`
	UserID       string  `json:"userId"`
	ReactionType *string `json:"reaction_type"`
	LikesCount   int     `json:"likesCount"`
	TotalCount   int     `json:"totalCount"`
}

type ReactionService interface {
	ReactToPost(ctx context.Context, postID, userID, reactionType string) (*ReactionCounts, error)
	RemovePostReaction(ctx context.Context, postID, userID string) (*ReactionCounts, error)
	ReactToComment(ctx context.Context, commentID, userID, reactionType string) (int, error)
	RemoveCommentReaction(ctx context.Context, commentID, userID string) (int, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	broadcaster  Broadcaster
}

func NewReactionService(reactionRepo repository.ReactionRepository, broadcaster Broadcaster) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		broadcaster:  broadcaster,
	}
}

// normalizeReactionType trims the label and falls back to "like" when
// the client sent nothing. Any non-empty label is accepted.
func normalizeReactionType(reactionType string) (string, error) {
	reactionType = strings.TrimSpace(reactionType)
	if reactionType == "" {
		return "like", nil
	}
	if len(reactionType) > 32 {
		return "", fmt.Errorf("недопустимый тип реакции: %s", reactionType)
	}
	return reactionType, nil
}

func (s *reactionService) ReactToPost(ctx context.Context, postID, userID, reactionType string) (*ReactionCounts, error) {
	reactionType, err := normalizeReactionType(reactionType)
	if err != nil {
		return nil, err
	}

	if err := s.reactionRepo.UpsertPostReaction(ctx, postID, userID, reactionType); err != nil {
		return nil, err
	}

	counts, err := s.countAndEmit(ctx, postID, userID, &reactionType)
	if err != nil {
		return nil, err
	}

	return counts, nil
}

func (s *reactionService) RemovePostReaction(ctx context.Context, postID, userID string) (*ReactionCounts, error) {
	if err := s.reactionRepo.DeletePostReaction(ctx, postID, userID); err != nil {
		return nil, err
	}

	counts, err := s.countAndEmit(ctx, postID, userID, nil)
	if err != nil {
		return nil, err
	}

	return counts, nil
}

func (s *reactionService) countAndEmit(ctx context.Context, postID, userID string, reactionType *string) (*ReactionCounts, error) {
	total, likes, err := s.reactionRepo.CountPostReactions(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Emit("reaction:updated", reactionUpdatedPayload{
		PostID:       postID,
		UserID:       userID,
		ReactionType: reactionType,
		LikesCount:   likes,
		TotalCount:   total,
	})

	return &ReactionCounts{ReactionType: reactionType, LikesCount: likes, TotalCount: total}, nil
}

func (s *reactionService) ReactToComment(ctx context.Context, commentID, userID, reactionType string) (int, error) {
	reactionType, err := normalizeReactionType(reactionType)
	if err != nil {
		return 0, err
	}

	if err := s.reactionRepo.UpsertCommentReaction(ctx, commentID, userID, reactionType); err != nil {
		return 0, err
	}

	return s.reactionRepo.CountCommentLikes(ctx, commentID)
}

func (s *reactionService) RemoveCommentReaction(ctx context.Context, commentID, userID string) (int, error) {
	if err := s.reactionRepo.DeleteCommentReaction(ctx, commentID, userID); err != nil {
		return 0, err
	}

	return s.reactionRepo.CountCommentLikes(ctx, commentID)
}
