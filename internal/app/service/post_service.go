package service

import (
	"context"
	"fmt"

	"blog_backend/internal/common"
	"blog_backend/internal/domain/model"
	"blog_backend/internal/domain/repository"
	"blog_backend/internal/platform/logger"
	"blog_backend/internal/platform/media"

	"github.com/google/uuid"
)

type PostService struct {
	postRepo repository.PostRepository
	uploader media.Uploader
}

func NewPostService(postRepo repository.PostRepository, uploader media.Uploader) *PostService {
	return &PostService{postRepo: postRepo, uploader: uploader}
}

type PostRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// CreatePost uploads the cover and stores the post. The cover is required.
func (s *PostService) CreatePost(ctx context.Context, authorID string, req PostRequest, cover *media.File) (*model.Post, error) {
	if cover == nil {
		return nil, common.Errorf("cover file is required: %w", common.ErrBadRequest)
	}

	coverURL, err := s.uploader.Upload(ctx, *cover, req.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to upload cover: %w", err)
	}

	post := &model.Post{
		ID:       uuid.NewString(),
		Title:    req.Title,
		Summary:  req.Summary,
		Content:  req.Content,
		Cover:    coverURL,
		AuthorID: authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	logger.Debugf("post %s created by %s", post.ID, authorID)
	return post, nil
}

// UpdatePost replaces text fields and, when cover is non-nil, the cover.
// Only the author may update; the upload happens after that check.
func (s *PostService) UpdatePost(ctx context.Context, postID, authorID string, req PostRequest, cover *media.File) (*model.Post, error) {
	if postID == "" {
		return nil, common.Errorf("post id is required: %w", common.ErrBadRequest)
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != authorID {
		return nil, common.ErrNotAuthor
	}

	if cover != nil {
		coverURL, err := s.uploader.Upload(ctx, *cover, req.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to upload cover: %w", err)
		}
		post.Cover = coverURL
	}
	post.Title = req.Title
	post.Summary = req.Summary
	post.Content = req.Content

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post %s: %w", postID, err)
	}
	return post, nil
}

// ListPosts returns the newest posts, at most model.FeedLimit.
func (s *PostService) ListPosts(ctx context.Context) ([]model.Post, error) {
	return s.postRepo.ListRecent(ctx, model.FeedLimit)
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	return s.postRepo.FindByID(ctx, postID)
}
