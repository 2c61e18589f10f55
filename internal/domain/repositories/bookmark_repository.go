package repositories

import (
	"context"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
)

// BookmarkRepository persiste bookmarks
type BookmarkRepository interface {
	Exists(ctx context.Context, userID, postID string) (bool, error)
	Create(ctx context.Context, bookmark *entities.Bookmark) error
	// Delete retorna false quando não havia bookmark
	Delete(ctx context.Context, userID, postID string) (bool, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*entities.Bookmark, error)
}
