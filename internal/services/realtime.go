package services

import (
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
)

// RealtimeEnvelope é o frame enviado aos clientes websocket
type RealtimeEnvelope struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

const (
	RealtimeKindNotification = "notification"
	RealtimeKindChatMessage  = "chat_message"
)

type notificationFrame struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Message      string    `json:"message"`
	TargetPostID *string   `json:"targetPostId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type chatMessageFrame struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func notificationEnvelope(n *entities.Notification) RealtimeEnvelope {
	return RealtimeEnvelope{
		Kind: RealtimeKindNotification,
		Data: notificationFrame{
			ID:           n.ID,
			Type:         string(n.Type),
			Message:      n.Message,
			TargetPostID: n.TargetPostID,
			CreatedAt:    n.CreatedAt,
		},
	}
}

func chatMessageEnvelope(m *entities.ChatMessage) RealtimeEnvelope {
	return RealtimeEnvelope{
		Kind: RealtimeKindChatMessage,
		Data: chatMessageFrame{
			ID:        m.ID,
			RoomID:    m.RoomID,
			SenderID:  m.SenderID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		},
	}
}
