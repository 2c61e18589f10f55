package repositories

import (
	"context"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
)

// SearchDocument é a projeção indexada de um post
type SearchDocument struct {
	PostID      string
	Title       string
	Description string
	Status      entities.PostStatus
}

// SearchRepository mantém o índice de busca de posts
type SearchRepository interface {
	Index(ctx context.Context, doc SearchDocument) error
	Remove(ctx context.Context, postID string) error
	Search(ctx context.Context, query string, page, pageSize int) ([]SearchDocument, error)
}
