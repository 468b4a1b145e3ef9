package model

import "time"

type Comment struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	AuthorID  string    `json:"author_id"`
	PostID    string    `json:"post_id"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
