package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// NotificationRepository implementa repositories.NotificationRepository
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository cria um novo NotificationRepository
func NewNotificationRepository(db *gorm.DB) repositories.NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Exists(ctx context.Context, receiverID string, notificationType entities.NotificationType, targetPostID *string) (bool, error) {
	var count int64

	query := conn(ctx, r.db).Model(&NotificationModel{}).
		Where("receiver_id = ? AND type = ?", receiverID, string(notificationType))
	if targetPostID != nil {
		query = query.Where("target_post_id = ?", *targetPostID)
	} else {
		query = query.Where("target_post_id IS NULL")
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entities.Notification) error {
	model := &NotificationModel{
		Base:         Base{ID: notification.ID},
		ReceiverID:   notification.ReceiverID,
		Type:         string(notification.Type),
		TargetPostID: notification.TargetPostID,
		Message:      notification.Message,
		IsRead:       notification.IsRead,
	}

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return err
	}

	notification.ID = model.ID
	notification.CreatedAt = fromUnix(model.CreatedAt)
	return nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*entities.Notification, error) {
	var model NotificationModel

	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *NotificationRepository) List(ctx context.Context, filters repositories.NotificationFilters) ([]*entities.Notification, error) {
	var models []*NotificationModel

	query := conn(ctx, r.db).Where("receiver_id = ?", filters.ReceiverID)
	if filters.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	query = paginate(query.Order("created_at DESC, id"), filters.Page, filters.PageSize)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	notifications := make([]*entities.Notification, 0, len(models))
	for _, model := range models {
		notifications = append(notifications, r.toEntity(model))
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	return conn(ctx, r.db).Model(&NotificationModel{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, receiverID string) (int64, error) {
	res := conn(ctx, r.db).Model(&NotificationModel{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	return conn(ctx, r.db).Where("id = ?", id).Delete(&NotificationModel{}).Error
}

func (r *NotificationRepository) toEntity(model *NotificationModel) *entities.Notification {
	return &entities.Notification{
		ID:           model.ID,
		ReceiverID:   model.ReceiverID,
		Type:         entities.NotificationType(model.Type),
		Message:      model.Message,
		TargetPostID: model.TargetPostID,
		IsRead:       model.IsRead,
		CreatedAt:    fromUnix(model.CreatedAt),
	}
}
