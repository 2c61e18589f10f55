package services

import (
	"context"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/events"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// ApplicationService conduz o ciclo de vida das candidaturas
type ApplicationService struct {
	appRepo     repositories.ApplicationRepository
	postRepo    repositories.PostRepository
	eligibility *EligibilityService
	uow         ports.UnitOfWork
	publisher   ports.EventPublisher
	sanitizer   ports.Sanitizer
	clock       ports.Clock
	logger      ports.Logger
}

// NewApplicationService cria um novo ApplicationService
func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	postRepo repositories.PostRepository,
	eligibility *EligibilityService,
	uow ports.UnitOfWork,
	publisher ports.EventPublisher,
	sanitizer ports.Sanitizer,
	clock ports.Clock,
	logger ports.Logger,
) *ApplicationService {
	return &ApplicationService{
		appRepo:     appRepo,
		postRepo:    postRepo,
		eligibility: eligibility,
		uow:         uow,
		publisher:   publisher,
		sanitizer:   sanitizer,
		clock:       clock,
		logger:      logger,
	}
}

// SubmitApplicationInput representa os dados de uma candidatura
type SubmitApplicationInput struct {
	PostID  string
	Role    entities.Role
	Message string
}

// Submit revalida a elegibilidade dentro da transação e grava a candidatura como SUBMITTED
func (s *ApplicationService) Submit(ctx context.Context, userID string, input SubmitApplicationInput) (*entities.Application, error) {
	var (
		application *entities.Application
		post        *entities.Post
	)

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		result, loaded, err := s.eligibility.check(txCtx, userID, input.PostID, input.Role)
		if err != nil {
			return err
		}
		if !result.CanApply {
			return result.Reason.Err()
		}
		post = loaded

		now := s.clock.Now()
		application = &entities.Application{
			PostID:      post.ID,
			Role:        input.Role,
			ApplicantID: userID,
			Message:     s.sanitizer.PlainText(input.Message),
			Status:      entities.ApplicationStatusSubmitted,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		return infra(s.appRepo.Create(txCtx, application))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("application submitted",
		"application_id", application.ID,
		"post_id", application.PostID,
		"role", string(application.Role),
		"applicant_id", userID,
	)

	publish(ctx, s.publisher, s.logger, s.event(events.ApplicationSubmitted, application, post.AuthorID))
	return application, nil
}

// Decide aceita ou recusa uma candidatura SUBMITTED. Apenas o autor do post pode decidir.
// No aceite, o consumo da vaga e a transição de estado commitam juntos.
func (s *ApplicationService) Decide(ctx context.Context, actorID, applicationID string, decision entities.Decision) (*entities.Application, error) {
	if !decision.Valid() {
		return nil, domainerrors.ErrInvalidVocabulary
	}

	var (
		application *entities.Application
		post        *entities.Post
	)

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		application, post, err = s.load(txCtx, applicationID)
		if err != nil {
			return err
		}

		if !post.IsAuthor(actorID) {
			return domainerrors.ErrForbidden
		}

		from := application.Status
		if from != entities.ApplicationStatusSubmitted {
			return domainerrors.ErrInvalidStateTransition
		}
		if err := application.TransitionTo(decision.Target(), s.clock.Now()); err != nil {
			return err
		}

		if decision == entities.DecisionAccept {
			if err := s.postRepo.DecrementRoleCapacity(txCtx, post.ID, application.Role); err != nil {
				return infra(err)
			}
		}

		return s.transition(txCtx, application, from)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("application decided",
		"application_id", application.ID,
		"post_id", application.PostID,
		"status", string(application.Status),
	)

	eventType := events.ApplicationRejected
	if decision == entities.DecisionAccept {
		eventType = events.ApplicationAccepted
	}
	publish(ctx, s.publisher, s.logger, s.event(eventType, application, post.AuthorID))

	return application, nil
}

// Withdraw retira a candidatura a pedido do candidato.
// Após o aceite só é permitido enquanto o post não estiver CLOSED; a vaga é devolvida.
func (s *ApplicationService) Withdraw(ctx context.Context, actorID, applicationID string) (*entities.Application, error) {
	var (
		application *entities.Application
		post        *entities.Post
	)

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		application, post, err = s.load(txCtx, applicationID)
		if err != nil {
			return err
		}

		if application.ApplicantID != actorID {
			return domainerrors.ErrForbidden
		}

		from := application.Status
		if from == entities.ApplicationStatusAccepted && post.Status == entities.PostStatusClosed {
			return domainerrors.ErrInvalidStateTransition
		}
		if err := application.TransitionTo(entities.ApplicationStatusWithdrawn, s.clock.Now()); err != nil {
			return err
		}

		if err := s.transition(txCtx, application, from); err != nil {
			return err
		}

		if from == entities.ApplicationStatusAccepted {
			return infra(s.postRepo.IncrementRoleCapacity(txCtx, post.ID, application.Role))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("application withdrawn",
		"application_id", application.ID,
		"post_id", application.PostID,
	)

	publish(ctx, s.publisher, s.logger, s.event(events.ApplicationWithdrawn, application, post.AuthorID))
	return application, nil
}

// Get retorna a candidatura para o candidato ou para o autor do post
func (s *ApplicationService) Get(ctx context.Context, actorID, applicationID string) (*entities.Application, error) {
	application, post, err := s.load(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.ApplicantID != actorID && !post.IsAuthor(actorID) {
		return nil, domainerrors.ErrForbidden
	}
	return application, nil
}

// ListByPost lista as candidaturas de um post (apenas para o autor)
func (s *ApplicationService) ListByPost(ctx context.Context, actorID, postID string, status *entities.ApplicationStatus) ([]*entities.Application, error) {
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

	applications, err := s.appRepo.ListByPost(ctx, postID, status)
	if err != nil {
		return nil, infra(err)
	}
	return applications, nil
}

// ListMine lista as candidaturas do usuário
func (s *ApplicationService) ListMine(ctx context.Context, userID string) ([]*entities.Application, error) {
	applications, err := s.appRepo.ListByApplicant(ctx, userID)
	if err != nil {
		return nil, infra(err)
	}
	return applications, nil
}

func (s *ApplicationService) load(ctx context.Context, applicationID string) (*entities.Application, *entities.Post, error) {
	application, err := s.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, nil, infra(err)
	}
	if application == nil {
		return nil, nil, domainerrors.ErrApplicationNotFound
	}

	post, err := s.postRepo.FindByID(ctx, application.PostID)
	if err != nil {
		return nil, nil, infra(err)
	}
	if post == nil {
		return nil, nil, domainerrors.ErrPostNotFound
	}

	return application, post, nil
}

// transition grava o novo estado condicionado ao estado lido
func (s *ApplicationService) transition(ctx context.Context, application *entities.Application, from entities.ApplicationStatus) error {
	ok, err := s.appRepo.TransitionStatus(ctx, application, from)
	if err != nil {
		return infra(err)
	}
	if !ok {
		return domainerrors.ErrInvalidStateTransition
	}
	return nil
}

func (s *ApplicationService) event(eventType events.Type, application *entities.Application, authorID string) events.Event {
	return events.Event{
		Type:          eventType,
		PostID:        application.PostID,
		ApplicationID: application.ID,
		ApplicantID:   application.ApplicantID,
		AuthorID:      authorID,
		Role:          string(application.Role),
		OccurredAt:    s.clock.Now(),
	}
}
