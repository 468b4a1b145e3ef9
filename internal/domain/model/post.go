package model

import "time"

// FeedLimit caps post listings and per-post comment listings.
const FeedLimit = 20

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Cover     string    `json:"cover"`
	AuthorID  string    `json:"author_id"`
	Author    *Author   `json:"author,omitempty"` // Resolved on reads
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
