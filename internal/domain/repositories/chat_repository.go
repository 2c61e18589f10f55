package repositories

import (
	"context"
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
)

// ChatRepository persiste salas e mensagens
type ChatRepository interface {
	FindRoom(ctx context.Context, postID, initiatorID string) (*entities.ChatRoom, error)
	FindRoomByID(ctx context.Context, id string) (*entities.ChatRoom, error)
	CreateRoom(ctx context.Context, room *entities.ChatRoom) error
	ListRoomsByUser(ctx context.Context, userID string) ([]*entities.ChatRoom, error)
	CreateMessage(ctx context.Context, message *entities.ChatMessage) error
	// ListMessages retorna mensagens mais recentes primeiro, anteriores a before quando informado
	ListMessages(ctx context.Context, roomID string, before *time.Time, limit int) ([]*entities.ChatMessage, error)
}
