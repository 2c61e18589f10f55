package entities

import "time"

// ChatRoom é uma conversa entre o autor de um post e outro usuário
type ChatRoom struct {
	ID          string
	PostID      string
	InitiatorID string
	OwnerID     string // autor do post
	CreatedAt   time.Time
}

// HasParticipant verifica se o usuário pertence à sala
func (r *ChatRoom) HasParticipant(userID string) bool {
	return r.InitiatorID == userID || r.OwnerID == userID
}

// Counterpart retorna o outro participante da sala
func (r *ChatRoom) Counterpart(userID string) string {
	if r.InitiatorID == userID {
		return r.OwnerID
	}
	return r.InitiatorID
}

// ChatMessage é uma mensagem enviada em uma sala
type ChatMessage struct {
	ID        string
	RoomID    string
	SenderID  string
	Content   string
	CreatedAt time.Time
}
