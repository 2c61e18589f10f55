package services

import (
	"context"
	"fmt"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/domain/events"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// LifecycleBridge consome os eventos do barramento e aciona notificações, chat e busca
type LifecycleBridge struct {
	notifications *NotificationService
	chat          *ChatService
	search        *SearchService
	postRepo      repositories.PostRepository
	translator    ports.Translator
	logger        ports.Logger
}

// NewLifecycleBridge cria um novo LifecycleBridge
func NewLifecycleBridge(
	notifications *NotificationService,
	chat *ChatService,
	search *SearchService,
	postRepo repositories.PostRepository,
	translator ports.Translator,
	logger ports.Logger,
) *LifecycleBridge {
	return &LifecycleBridge{
		notifications: notifications,
		chat:          chat,
		search:        search,
		postRepo:      postRepo,
		translator:    translator,
		logger:        logger,
	}
}

var _ ports.EventHandler = (*LifecycleBridge)(nil)

// Handle implementa ports.EventHandler
func (b *LifecycleBridge) Handle(ctx context.Context, event events.Event) error {
	b.logger.Debug("handling event", "id", event.ID, "type", string(event.Type), "post_id", event.PostID)

	switch event.Type {
	case events.ApplicationSubmitted:
		return b.notify(ctx, event, event.AuthorID, entities.NotificationApplicationReceived, "notification.application_received")

	case events.ApplicationAccepted:
		if _, err := b.chat.InitiateChat(ctx, event.PostID, event.ApplicantID); err != nil {
			return fmt.Errorf("initiate chat: %w", err)
		}
		return b.notify(ctx, event, event.ApplicantID, entities.NotificationApplicationAccepted, "notification.application_accepted")

	case events.ApplicationRejected:
		return b.notify(ctx, event, event.ApplicantID, entities.NotificationApplicationRejected, "notification.application_rejected")

	case events.ApplicationWithdrawn:
		return b.notify(ctx, event, event.AuthorID, entities.NotificationApplicationWithdrawn, "notification.application_withdrawn")

	case events.PostIndexed, events.PostClosed:
		return b.search.IndexPost(ctx, event.PostID)
	}

	b.logger.Warn("unknown event type", "type", string(event.Type))
	return nil
}

func (b *LifecycleBridge) notify(
	ctx context.Context,
	event events.Event,
	receiverID string,
	notificationType entities.NotificationType,
	key string,
) error {
	params := map[string]any{
		"Role":  entities.Role(event.Role).DisplayName(),
		"Title": "",
	}

	post, err := b.postRepo.FindByID(ctx, event.PostID)
	if err != nil {
		return infra(err)
	}
	if post != nil {
		params["Title"] = post.Title
	}

	postID := event.PostID
	_, err = b.notifications.Notify(ctx, entities.NotificationPayload{
		ReceiverID:   receiverID,
		Type:         notificationType,
		Message:      b.translator.Translate(key, params),
		TargetPostID: &postID,
	})
	return err
}
