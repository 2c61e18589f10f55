package repositories

import (
	"context"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
)

// NotificationRepository persiste notificações
type NotificationRepository interface {
	Exists(ctx context.Context, receiverID string, notificationType entities.NotificationType, targetPostID *string) (bool, error)
	Create(ctx context.Context, notification *entities.Notification) error
	FindByID(ctx context.Context, id string) (*entities.Notification, error)
	List(ctx context.Context, filters NotificationFilters) ([]*entities.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, receiverID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// NotificationFilters contém filtros para listagem de notificações
type NotificationFilters struct {
	ReceiverID string
	UnreadOnly bool
	Page       int
	PageSize   int
}
