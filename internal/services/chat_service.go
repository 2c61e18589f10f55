package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

const maxChatMessageLength = 2000

// ChatService gerencia salas entre o autor de um post e outro usuário
type ChatService struct {
	chatRepo      repositories.ChatRepository
	postRepo      repositories.PostRepository
	notifications *NotificationService
	broadcaster   ports.Broadcaster
	sanitizer     ports.Sanitizer
	translator    ports.Translator
	clock         ports.Clock
	logger        ports.Logger
}

// NewChatService cria um novo ChatService
func NewChatService(
	chatRepo repositories.ChatRepository,
	postRepo repositories.PostRepository,
	notifications *NotificationService,
	broadcaster ports.Broadcaster,
	sanitizer ports.Sanitizer,
	translator ports.Translator,
	clock ports.Clock,
	logger ports.Logger,
) *ChatService {
	return &ChatService{
		chatRepo:      chatRepo,
		postRepo:      postRepo,
		notifications: notifications,
		broadcaster:   broadcaster,
		sanitizer:     sanitizer,
		translator:    translator,
		clock:         clock,
		logger:        logger,
	}
}

// InitiateChat abre (ou reaproveita) a sala entre initiatorID e o autor do post
func (s *ChatService) InitiateChat(ctx context.Context, postID, initiatorID string) (*entities.ChatRoom, error) {
	post, err := s.post(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.IsAuthor(initiatorID) {
		return nil, domainerrors.ErrInvalidChatTarget
	}
	return s.room(ctx, post, initiatorID)
}

// SendMessageInput identifica a sala por RoomID, ou por PostID + ReceiverID na primeira mensagem
type SendMessageInput struct {
	RoomID     string
	PostID     string
	ReceiverID string
	Content    string
}

// SendMessage grava a mensagem de um participante e a transmite na sala
func (s *ChatService) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entities.ChatMessage, error) {
	content := strings.TrimSpace(s.sanitizer.PlainText(input.Content))
	if content == "" {
		return nil, domainerrors.ErrEmptyMessage
	}
	if len([]rune(content)) > maxChatMessageLength {
		content = string([]rune(content)[:maxChatMessageLength])
	}

	room, post, err := s.resolveRoom(ctx, senderID, input)
	if err != nil {
		return nil, err
	}

	message := &entities.ChatMessage{
		RoomID:    room.ID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: s.clock.Now(),
	}
	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, infra(err)
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(RoomTopic(room.ID), chatMessageEnvelope(message))
	}
	s.notifyCounterpart(ctx, room, post, senderID)

	return message, nil
}

// ListRooms lista as salas das quais o usuário participa
func (s *ChatService) ListRooms(ctx context.Context, userID string) ([]*entities.ChatRoom, error) {
	rooms, err := s.chatRepo.ListRoomsByUser(ctx, userID)
	if err != nil {
		return nil, infra(err)
	}
	return rooms, nil
}

// ListMessages lista mensagens da sala, mais recentes primeiro, anteriores a before
func (s *ChatService) ListMessages(ctx context.Context, userID, roomID string, before *time.Time, limit int) ([]*entities.ChatMessage, error) {
	if _, err := s.Room(ctx, userID, roomID); err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.ListMessages(ctx, roomID, before, limit)
	if err != nil {
		return nil, infra(err)
	}
	return messages, nil
}

// Room retorna a sala se o usuário for participante
func (s *ChatService) Room(ctx context.Context, userID, roomID string) (*entities.ChatRoom, error) {
	room, err := s.chatRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, infra(err)
	}
	if room == nil {
		return nil, domainerrors.ErrChatRoomNotFound
	}
	if !room.HasParticipant(userID) {
		return nil, domainerrors.ErrNotParticipant
	}
	return room, nil
}

func (s *ChatService) resolveRoom(ctx context.Context, senderID string, input SendMessageInput) (*entities.ChatRoom, *entities.Post, error) {
	if input.RoomID != "" {
		room, err := s.Room(ctx, senderID, input.RoomID)
		if err != nil {
			return nil, nil, err
		}
		post, err := s.post(ctx, room.PostID)
		if err != nil {
			return nil, nil, err
		}
		return room, post, nil
	}

	if input.PostID == "" || input.ReceiverID == "" || input.ReceiverID == senderID {
		return nil, nil, domainerrors.ErrInvalidChatTarget
	}

	post, err := s.post(ctx, input.PostID)
	if err != nil {
		return nil, nil, err
	}

	// Toda sala tem o autor do post de um lado
	initiatorID := senderID
	switch {
	case post.IsAuthor(senderID):
		initiatorID = input.ReceiverID
	case !post.IsAuthor(input.ReceiverID):
		return nil, nil, domainerrors.ErrInvalidChatTarget
	}

	room, err := s.room(ctx, post, initiatorID)
	if err != nil {
		return nil, nil, err
	}
	return room, post, nil
}

func (s *ChatService) room(ctx context.Context, post *entities.Post, initiatorID string) (*entities.ChatRoom, error) {
	room, err := s.chatRepo.FindRoom(ctx, post.ID, initiatorID)
	if err != nil {
		return nil, infra(err)
	}
	if room != nil {
		return room, nil
	}

	room = &entities.ChatRoom{
		PostID:      post.ID,
		InitiatorID: initiatorID,
		OwnerID:     post.AuthorID,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.chatRepo.CreateRoom(ctx, room); err != nil {
		return nil, infra(err)
	}

	s.logger.Info("chat room created", "room_id", room.ID, "post_id", post.ID, "initiator_id", initiatorID)
	return room, nil
}

func (s *ChatService) post(ctx context.Context, postID string) (*entities.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, infra(err)
	}
	if post == nil {
		return nil, domainerrors.ErrPostNotFound
	}
	return post, nil
}

func (s *ChatService) notifyCounterpart(ctx context.Context, room *entities.ChatRoom, post *entities.Post, senderID string) {
	if s.notifications == nil {
		return
	}
	_, err := s.notifications.Notify(ctx, entities.NotificationPayload{
		ReceiverID:   room.Counterpart(senderID),
		Type:         entities.NotificationChatMessage,
		Message:      s.translator.Translate("notification.chat_message", map[string]any{"Title": post.Title}),
		TargetPostID: &post.ID,
	})
	if err != nil {
		s.logger.Warn("failed to notify chat message", "room_id", room.ID, "error", err)
	}
}
