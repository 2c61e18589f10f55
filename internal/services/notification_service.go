package services

import (
	"context"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// NotificationService grava alertas e os entrega em tempo real
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	postRepo         repositories.PostRepository
	profileRepo      repositories.ProfileRepository
	userRepo         repositories.UserRepository
	broadcaster      ports.Broadcaster
	translator       ports.Translator
	logger           ports.Logger
}

// NewNotificationService cria um novo NotificationService
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	postRepo repositories.PostRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	broadcaster ports.Broadcaster,
	translator ports.Translator,
	logger ports.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		postRepo:         postRepo,
		profileRepo:      profileRepo,
		userRepo:         userRepo,
		broadcaster:      broadcaster,
		translator:       translator,
		logger:           logger,
	}
}

// Notify grava a notificação, exceto quando a tripla (destinatário, tipo, post) já existe.
// Retorna nil sem erro quando a notificação foi descartada como duplicada.
func (s *NotificationService) Notify(ctx context.Context, payload entities.NotificationPayload) (*entities.Notification, error) {
	if !payload.Type.Valid() {
		return nil, domainerrors.ErrInvalidVocabulary
	}

	exists, err := s.notificationRepo.Exists(ctx, payload.ReceiverID, payload.Type, payload.TargetPostID)
	if err != nil {
		return nil, infra(err)
	}
	if exists {
		s.logger.Debug("duplicate notification skipped",
			"receiver_id", payload.ReceiverID,
			"type", string(payload.Type),
		)
		return nil, nil
	}

	notification := &entities.Notification{
		ReceiverID:   payload.ReceiverID,
		Type:         payload.Type,
		Message:      payload.Message,
		TargetPostID: payload.TargetPostID,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, infra(err)
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(UserTopic(notification.ReceiverID), notificationEnvelope(notification))
	}

	s.logger.Info("notification created",
		"notification_id", notification.ID,
		"receiver_id", notification.ReceiverID,
		"type", string(notification.Type),
	)
	return notification, nil
}

// Propose envia uma proposta de participação do autor de um post a outro usuário,
// respeitando o opt-in do destinatário para o tipo do projeto
func (s *NotificationService) Propose(ctx context.Context, actorID, postID, targetUserID string) (*entities.Notification, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, infra(err)
	}
	if post == nil {
		return nil, domainerrors.ErrPostNotFound
	}
	if !post.IsAuthor(actorID) {
		return nil, domainerrors.ErrForbidden
	}
	if targetUserID == actorID {
		return nil, domainerrors.ErrInvalidChatTarget
	}

	target, err := s.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, infra(err)
	}
	if target == nil || !target.IsActive() {
		return nil, domainerrors.ErrUserNotFound
	}

	profile, err := s.profileRepo.FindByUserID(ctx, targetUserID)
	if err != nil {
		return nil, infra(err)
	}
	if profile == nil {
		return nil, domainerrors.ErrProfileNotFound
	}

	settings, err := s.profileRepo.GetProposalSettings(ctx, profile.ID)
	if err != nil {
		return nil, infra(err)
	}
	if settings == nil {
		settings = entities.DefaultProposalNotification(profile.ID)
	}
	if !settings.Accepts(post.ProjectType) {
		return nil, domainerrors.ErrProposalDisabled
	}

	notificationType := entities.ProposalNotificationType(post.ProjectType)
	key := "notification.project_proposal"
	if notificationType == entities.NotificationStudyProposal {
		key = "notification.study_proposal"
	}

	return s.Notify(ctx, entities.NotificationPayload{
		ReceiverID:   targetUserID,
		Type:         notificationType,
		Message:      s.translator.Translate(key, map[string]any{"Title": post.Title}),
		TargetPostID: &post.ID,
	})
}

// List lista as notificações do usuário
func (s *NotificationService) List(ctx context.Context, filters repositories.NotificationFilters) ([]*entities.Notification, error) {
	notifications, err := s.notificationRepo.List(ctx, filters)
	if err != nil {
		return nil, infra(err)
	}
	return notifications, nil
}

// MarkRead marca uma notificação como lida (apenas o destinatário)
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) (*entities.Notification, error) {
	notification, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if notification.IsRead {
		return notification, nil
	}

	if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
		return nil, infra(err)
	}
	notification.IsRead = true
	return notification, nil
}

// MarkAllRead marca todas as notificações do usuário como lidas
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	count, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, infra(err)
	}
	return count, nil
}

// Delete remove uma notificação do usuário
func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return infra(s.notificationRepo.Delete(ctx, id))
}

// owned esconde notificações de outros usuários como inexistentes
func (s *NotificationService) owned(ctx context.Context, userID, id string) (*entities.Notification, error) {
	notification, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, infra(err)
	}
	if notification == nil || notification.ReceiverID != userID {
		return nil, domainerrors.ErrNotificationNotFound
	}
	return notification, nil
}
