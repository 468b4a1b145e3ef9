package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog_backend/internal/common"
	"blog_backend/internal/domain/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	ListRecent(ctx context.Context, limit int) ([]model.Post, error)
}

type pgPostRepository struct {
	db *sql.DB
}

func NewPgPostRepository(db *sql.DB) PostRepository {
	return &pgPostRepository{db: db}
}

const postSelect = `
        SELECT p.id, p.title, p.summary, p.content, p.cover, p.author_id,
               p.created_at, p.updated_at, u.id, u.username
        FROM posts p
        LEFT JOIN users u ON p.author_id = u.id`

func (r *pgPostRepository) Create(ctx context.Context, p *model.Post) error {
	query := `INSERT INTO posts (id, title, summary, content, cover, author_id)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, p.ID, p.Title, p.Summary, p.Content, p.Cover, p.AuthorID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPostRepository) Update(ctx context.Context, p *model.Post) error {
	query := `UPDATE posts SET
                title = $1, summary = $2, content = $3, cover = $4, updated_at = CURRENT_TIMESTAMP
              WHERE id = $5
              RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, p.Title, p.Summary, p.Content, p.Cover, p.ID).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgPostRepository.Update: %w", err)
	}
	return nil
}

func (r *pgPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	row := r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.FindByID: %w", err)
	}
	return post, nil
}

func (r *pgPostRepository) ListRecent(ctx context.Context, limit int) ([]model.Post, error) {
	rows, err := r.db.QueryContext(ctx, postSelect+` ORDER BY p.created_at DESC, p.seq DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.ListRecent query: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("pgPostRepository.ListRecent scan: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPostRepository.ListRecent rows: %w", err)
	}
	return posts, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*model.Post, error) {
	var p model.Post
	var authorID, authorName sql.NullString
	err := row.Scan(
		&p.ID, &p.Title, &p.Summary, &p.Content, &p.Cover, &p.AuthorID,
		&p.CreatedAt, &p.UpdatedAt, &authorID, &authorName,
	)
	if err != nil {
		return nil, err
	}
	p.Author = toAuthor(authorID, authorName)
	return &p, nil
}

func toAuthor(id, username sql.NullString) *model.Author {
	if !id.Valid {
		return nil
	}
	return &model.Author{ID: id.String, Username: username.String}
}
