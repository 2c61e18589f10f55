package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// BookmarkRepository implementa repositories.BookmarkRepository
type BookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository cria um novo BookmarkRepository
func NewBookmarkRepository(db *gorm.DB) repositories.BookmarkRepository {
	return &BookmarkRepository{db: db}
}

func (r *BookmarkRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	var count int64

	err := conn(ctx, r.db).Model(&BookmarkModel{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Create é idempotente: um bookmark já existente não gera erro
func (r *BookmarkRepository) Create(ctx context.Context, bookmark *entities.Bookmark) error {
	model := &BookmarkModel{
		Base:   Base{ID: bookmark.ID},
		UserID: bookmark.UserID,
		PostID: bookmark.PostID,
	}

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}

	bookmark.ID = model.ID
	bookmark.CreatedAt = fromUnix(model.CreatedAt)
	return nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, userID, postID string) (bool, error) {
	res := conn(ctx, r.db).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&BookmarkModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *BookmarkRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*entities.Bookmark, error) {
	var models []*BookmarkModel

	query := conn(ctx, r.db).Where("user_id = ?", userID).Order("created_at DESC, id")
	if err := paginate(query, page, pageSize).Find(&models).Error; err != nil {
		return nil, err
	}

	bookmarks := make([]*entities.Bookmark, 0, len(models))
	for _, model := range models {
		bookmarks = append(bookmarks, &entities.Bookmark{
			ID:        model.ID,
			UserID:    model.UserID,
			PostID:    model.PostID,
			CreatedAt: fromUnix(model.CreatedAt),
		})
	}
	return bookmarks, nil
}
