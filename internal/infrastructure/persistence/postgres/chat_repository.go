package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// ChatRepository implementa repositories.ChatRepository
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository cria um novo ChatRepository
func NewChatRepository(db *gorm.DB) repositories.ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) FindRoom(ctx context.Context, postID, initiatorID string) (*entities.ChatRoom, error) {
	return r.findRoom(ctx, "post_id = ? AND initiator_id = ?", postID, initiatorID)
}

func (r *ChatRepository) FindRoomByID(ctx context.Context, id string) (*entities.ChatRoom, error) {
	return r.findRoom(ctx, "id = ?", id)
}

func (r *ChatRepository) findRoom(ctx context.Context, query string, args ...any) (*entities.ChatRoom, error) {
	var model ChatRoomModel

	if err := conn(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toChatRoom(&model), nil
}

func (r *ChatRepository) CreateRoom(ctx context.Context, room *entities.ChatRoom) error {
	model := &ChatRoomModel{
		Base:        Base{ID: room.ID},
		PostID:      room.PostID,
		InitiatorID: room.InitiatorID,
		OwnerID:     room.OwnerID,
	}

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		// Corrida na criação: a sala do par (post, iniciador) já existe
		existing, findErr := r.FindRoom(ctx, room.PostID, room.InitiatorID)
		if findErr != nil || existing == nil {
			return err
		}
		*room = *existing
		return nil
	}

	room.ID = model.ID
	room.CreatedAt = fromUnix(model.CreatedAt)
	return nil
}

func (r *ChatRepository) ListRoomsByUser(ctx context.Context, userID string) ([]*entities.ChatRoom, error) {
	var models []*ChatRoomModel

	err := conn(ctx, r.db).
		Where("initiator_id = ? OR owner_id = ?", userID, userID).
		Order("created_at DESC, id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	rooms := make([]*entities.ChatRoom, 0, len(models))
	for _, model := range models {
		rooms = append(rooms, toChatRoom(model))
	}
	return rooms, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, message *entities.ChatMessage) error {
	model := &ChatMessageModel{
		Base:     Base{ID: message.ID},
		RoomID:   message.RoomID,
		SenderID: message.SenderID,
		Content:  message.Content,
	}

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return err
	}

	message.ID = model.ID
	message.CreatedAt = time.UnixMilli(model.CreatedAt).UTC()
	return nil
}

func (r *ChatRepository) ListMessages(ctx context.Context, roomID string, before *time.Time, limit int) ([]*entities.ChatMessage, error) {
	var models []*ChatMessageModel

	if limit < 1 || limit > 100 {
		limit = 50
	}

	query := conn(ctx, r.db).Where("room_id = ?", roomID)
	if before != nil {
		query = query.Where("created_at < ?", before.UnixMilli())
	}

	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}

	messages := make([]*entities.ChatMessage, 0, len(models))
	for _, model := range models {
		messages = append(messages, &entities.ChatMessage{
			ID:        model.ID,
			RoomID:    model.RoomID,
			SenderID:  model.SenderID,
			Content:   model.Content,
			CreatedAt: time.UnixMilli(model.CreatedAt).UTC(),
		})
	}
	return messages, nil
}

func toChatRoom(model *ChatRoomModel) *entities.ChatRoom {
	return &entities.ChatRoom{
		ID:          model.ID,
		PostID:      model.PostID,
		InitiatorID: model.InitiatorID,
		OwnerID:     model.OwnerID,
		CreatedAt:   fromUnix(model.CreatedAt),
	}
}
