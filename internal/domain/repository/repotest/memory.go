// Package repotest provides in-memory repositories for service and handler tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"blog_backend/internal/common"
	"blog_backend/internal/domain/model"
)

// Store backs all three repositories so author lookups behave like the SQL joins.
type Store struct {
	mu       sync.Mutex
	seq      int
	users    map[string]model.User
	posts    map[string]entry[model.Post]
	comments map[string]entry[model.Comment]
}

type entry[T any] struct {
	seq   int
	value T
}

func NewStore() *Store {
	return &Store{
		users:    map[string]model.User{},
		posts:    map[string]entry[model.Post]{},
		comments: map[string]entry[model.Comment]{},
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s} }
func (s *Store) Posts() *PostRepository       { return &PostRepository{s} }
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s} }

func (s *Store) author(id string) *model.Author {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &model.Author{ID: u.ID, Username: u.Username}
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return common.ErrDuplicateUser
		}
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

type PostRepository struct{ s *Store }

func (r *PostRepository) Create(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	post.UpdatedAt = post.CreatedAt
	stored := *post
	stored.Author = nil
	r.s.posts[post.ID] = entry[model.Post]{seq: r.s.seq, value: stored}
	return nil
}

func (r *PostRepository) Update(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.posts[post.ID]
	if !ok {
		return common.ErrNotFound
	}
	post.UpdatedAt = time.Now().UTC()
	e.value.Title, e.value.Summary, e.value.Content, e.value.Cover = post.Title, post.Summary, post.Content, post.Cover
	e.value.UpdatedAt = post.UpdatedAt
	r.s.posts[post.ID] = e
	return nil
}

func (r *PostRepository) FindByID(_ context.Context, id string) (*model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	p := e.value
	p.Author = r.s.author(p.AuthorID)
	return &p, nil
}

func (r *PostRepository) ListRecent(_ context.Context, limit int) ([]model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entries := make([]entry[model.Post], 0, len(r.s.posts))
	for _, e := range r.s.posts {
		entries = append(entries, e)
	}
	sortNewestFirst(entries, func(p model.Post) time.Time { return p.CreatedAt })

	posts := []model.Post{}
	for i := 0; i < len(entries) && i < limit; i++ {
		p := entries[i].value
		p.Author = r.s.author(p.AuthorID)
		posts = append(posts, p)
	}
	return posts, nil
}

type CommentRepository struct{ s *Store }

func (r *CommentRepository) Create(_ context.Context, c *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	stored := *c
	stored.Author = nil
	r.s.comments[c.ID] = entry[model.Comment]{seq: r.s.seq, value: stored}
	return nil
}

func (r *CommentRepository) ListByPost(_ context.Context, postID string, limit int) ([]model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var entries []entry[model.Comment]
	for _, e := range r.s.comments {
		if e.value.PostID == postID {
			entries = append(entries, e)
		}
	}
	sortNewestFirst(entries, func(c model.Comment) time.Time { return c.CreatedAt })

	comments := []model.Comment{}
	for i := 0; i < len(entries) && i < limit; i++ {
		c := entries[i].value
		c.Author = r.s.author(c.AuthorID)
		comments = append(comments, c)
	}
	return comments, nil
}

func (r *CommentRepository) UpdateMessage(_ context.Context, id, message string) (*model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.comments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	e.value.Message = message
	r.s.comments[id] = e
	c := e.value
	return &c, nil
}

func (r *CommentRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.s.comments, id)
	return nil
}

// Timestamps can collide within a test, so insertion order breaks ties.
func sortNewestFirst[T any](entries []entry[T], createdAt func(T) time.Time) {
	sort.Slice(entries, func(i, j int) bool {
		ti, tj := createdAt(entries[i].value), createdAt(entries[j].value)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return entries[i].seq > entries[j].seq
	})
}
