package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog_backend/internal/common"
	"blog_backend/internal/domain/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByPost(ctx context.Context, postID string, limit int) ([]model.Comment, error)
	UpdateMessage(ctx context.Context, id, message string) (*model.Comment, error)
	Delete(ctx context.Context, id string) error
}

type pgCommentRepository struct {
	db *sql.DB
}

func NewPgCommentRepository(db *sql.DB) CommentRepository {
	return &pgCommentRepository{db: db}
}

func (r *pgCommentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `INSERT INTO comments (id, message, author_id, post_id, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Message, c.AuthorID, c.PostID, c.CreatedAt); err != nil {
		return fmt.Errorf("pgCommentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) ListByPost(ctx context.Context, postID string, limit int) ([]model.Comment, error) {
	query := `
        SELECT c.id, c.message, c.author_id, c.post_id, c.created_at, u.id, u.username
        FROM comments c
        LEFT JOIN users u ON c.author_id = u.id
        WHERE c.post_id = $1
        ORDER BY c.created_at DESC, c.seq DESC
        LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, postID, limit)
	if err != nil {
		return nil, fmt.Errorf("pgCommentRepository.ListByPost query: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		var authorID, authorName sql.NullString
		if err := rows.Scan(&c.ID, &c.Message, &c.AuthorID, &c.PostID, &c.CreatedAt, &authorID, &authorName); err != nil {
			return nil, fmt.Errorf("pgCommentRepository.ListByPost scan: %w", err)
		}
		c.Author = toAuthor(authorID, authorName)
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCommentRepository.ListByPost rows: %w", err)
	}
	return comments, nil
}

func (r *pgCommentRepository) UpdateMessage(ctx context.Context, id, message string) (*model.Comment, error) {
	query := `UPDATE comments SET message = $1 WHERE id = $2
	          RETURNING id, message, author_id, post_id, created_at`
	var c model.Comment
	err := r.db.QueryRowContext(ctx, query, message, id).Scan(&c.ID, &c.Message, &c.AuthorID, &c.PostID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCommentRepository.UpdateMessage: %w", err)
	}
	return &c, nil
}

func (r *pgCommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
