package dto

import (
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
)

// ListNotificationsQuery filtra as notificações do usuário
type ListNotificationsQuery struct {
	PageQuery
	UnreadOnly bool `form:"unread_only"`
}

// ProposalRequest propõe um post a outro usuário
type ProposalRequest struct {
	PostID       string `json:"post_id" binding:"required,uuid"`
	TargetUserID string `json:"target_user_id" binding:"required,uuid"`
}

// NotificationResponse representa uma notificação
type NotificationResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Message      string    `json:"message"`
	TargetPostID *string   `json:"target_post_id,omitempty"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}

// MarkAllReadResponse informa quantas notificações foram marcadas
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// ToNotificationResponse converte uma entidade Notification
func ToNotificationResponse(notification *entities.Notification) NotificationResponse {
	return NotificationResponse{
		ID:           notification.ID,
		Type:         string(notification.Type),
		Message:      notification.Message,
		TargetPostID: notification.TargetPostID,
		IsRead:       notification.IsRead,
		CreatedAt:    notification.CreatedAt,
	}
}

// ToNotificationResponses converte uma lista de notificações
func ToNotificationResponses(notifications []*entities.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i, notification := range notifications {
		responses[i] = ToNotificationResponse(notification)
	}
	return responses
}
