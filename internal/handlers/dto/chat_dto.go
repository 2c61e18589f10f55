package dto

import (
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/services"
)

// InitiateChatRequest abre (ou reaproveita) a sala com o autor do post
type InitiateChatRequest struct {
	PostID string `json:"post_id" binding:"required,uuid"`
}

// SendMessageRequest envia uma mensagem por room_id, ou por post_id + receiver_id na primeira mensagem
type SendMessageRequest struct {
	RoomID     string `json:"room_id" binding:"omitempty,uuid"`
	PostID     string `json:"post_id" binding:"omitempty,uuid"`
	ReceiverID string `json:"receiver_id" binding:"omitempty,uuid"`
	Content    string `json:"content" binding:"required,max=2000"`
}

// ListMessagesQuery pagina mensagens por cursor de tempo
type ListMessagesQuery struct {
	Before *time.Time `form:"before"`
	Limit  int        `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ChatRoomResponse representa uma sala de chat
type ChatRoomResponse struct {
	ID          string    `json:"id"`
	PostID      string    `json:"post_id"`
	InitiatorID string    `json:"initiator_id"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChatMessageResponse representa uma mensagem
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ToSendMessageInput converte a requisição
func (r SendMessageRequest) ToSendMessageInput() services.SendMessageInput {
	return services.SendMessageInput{
		RoomID:     r.RoomID,
		PostID:     r.PostID,
		ReceiverID: r.ReceiverID,
		Content:    r.Content,
	}
}

// ToChatRoomResponse converte uma entidade ChatRoom
func ToChatRoomResponse(room *entities.ChatRoom) ChatRoomResponse {
	return ChatRoomResponse{
		ID:          room.ID,
		PostID:      room.PostID,
		InitiatorID: room.InitiatorID,
		OwnerID:     room.OwnerID,
		CreatedAt:   room.CreatedAt,
	}
}

// ToChatRoomResponses converte uma lista de salas
func ToChatRoomResponses(rooms []*entities.ChatRoom) []ChatRoomResponse {
	responses := make([]ChatRoomResponse, len(rooms))
	for i, room := range rooms {
		responses[i] = ToChatRoomResponse(room)
	}
	return responses
}

// ToChatMessageResponse converte uma entidade ChatMessage
func ToChatMessageResponse(message *entities.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        message.ID,
		RoomID:    message.RoomID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
}

// ToChatMessageResponses converte uma lista de mensagens
func ToChatMessageResponses(messages []*entities.ChatMessage) []ChatMessageResponse {
	responses := make([]ChatMessageResponse, len(messages))
	for i, message := range messages {
		responses[i] = ToChatMessageResponse(message)
	}
	return responses
}
