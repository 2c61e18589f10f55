package services

import (
	"context"

	"github.com/google/uuid"

	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/events"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
)

// UserTopic é o tópico realtime pessoal de um usuário
func UserTopic(userID string) string {
	return "user:" + userID
}

// RoomTopic é o tópico realtime de uma sala de chat
func RoomTopic(roomID string) string {
	return "room:" + roomID
}

// infra embrulha falhas de repositório; erros de domínio passam intactos
func infra(err error) error {
	return domainerrors.Infrastructure(err)
}

// publish entrega o evento sem bloquear o fluxo: falhas são apenas logadas
func publish(ctx context.Context, publisher ports.EventPublisher, logger ports.Logger, event events.Event) {
	if publisher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Error("failed to publish event",
			"type", string(event.Type),
			"post_id", event.PostID,
			"application_id", event.ApplicationID,
			"error", err,
		)
	}
}
