package service

import (
	"context"
	"fmt"
	"time"

	"blog_backend/internal/common"
	"blog_backend/internal/domain/model"
	"blog_backend/internal/domain/repository"

	"github.com/google/uuid"
)

// CommentService has no ownership checks on update or delete; any caller
// holding a comment id may change or remove it.
type CommentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

type CreateCommentRequest struct {
	PostID  string `json:"id"`
	Message string `json:"comment"`
}

type UpdateCommentRequest struct {
	Message string `json:"message"`
}

func (s *CommentService) CreateComment(ctx context.Context, authorID string, req CreateCommentRequest) (*model.Comment, error) {
	if req.PostID == "" {
		return nil, common.Errorf("post id is required: %w", common.ErrBadRequest)
	}

	comment := &model.Comment{
		ID:        uuid.NewString(),
		Message:   req.Message,
		AuthorID:  authorID,
		PostID:    req.PostID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// ListComments returns the newest comments of a post, at most model.FeedLimit.
func (s *CommentService) ListComments(ctx context.Context, postID string) ([]model.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID, model.FeedLimit)
}

func (s *CommentService) UpdateComment(ctx context.Context, commentID string, req UpdateCommentRequest) (*model.Comment, error) {
	comment, err := s.commentRepo.UpdateMessage(ctx, commentID, req.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment %s: %w", commentID, err)
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID string) error {
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment %s: %w", commentID, err)
	}
	return nil
}
