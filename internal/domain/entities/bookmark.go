package entities

import "time"

// Bookmark marca um post salvo por um usuário
type Bookmark struct {
	ID        string
	UserID    string
	PostID    string
	CreatedAt time.Time
}
