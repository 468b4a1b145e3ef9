package model

import (
	"time"
)

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Not exposed
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Author is the public projection of a user attached to posts and comments.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
