package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/events"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// PostService mantém o registro de posts e suas vagas
type PostService struct {
	postRepo  repositories.PostRepository
	userRepo  repositories.UserRepository
	uow       ports.UnitOfWork
	publisher ports.EventPublisher
	sanitizer ports.Sanitizer
	clock     ports.Clock
	logger    ports.Logger
}

// NewPostService cria um novo PostService
func NewPostService(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	publisher ports.EventPublisher,
	sanitizer ports.Sanitizer,
	clock ports.Clock,
	logger ports.Logger,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		uow:       uow,
		publisher: publisher,
		sanitizer: sanitizer,
		clock:     clock,
		logger:    logger,
	}
}

// PostInput representa os dados de criação de um post
type PostInput struct {
	ProjectType  entities.ProjectType
	Status       entities.PostStatus // DRAFT ou OPEN
	ActivityMode entities.ActivityMode
	Duration     entities.Duration
	DeadlineAt   time.Time
	Title        string
	Content      string
	Interests    []entities.Interest
	TechStacks   []entities.TechStack
	Roles        map[entities.Role]int
}

// UpdatePostInput contém os campos editáveis; nil/vazio mantém o valor atual
type UpdatePostInput struct {
	ActivityMode *entities.ActivityMode
	Duration     *entities.Duration
	DeadlineAt   *time.Time
	Title        *string
	Content      *string
	Interests    []entities.Interest
	TechStacks   []entities.TechStack
	Roles        map[entities.Role]int
}

// Create registra um post em DRAFT ou OPEN
func (s *PostService) Create(ctx context.Context, authorID string, input PostInput) (*entities.Post, error) {
	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, infra(err)
	}
	if author == nil || !author.IsActive() {
		return nil, domainerrors.ErrUserNotFound
	}

	status := input.Status
	if status == "" {
		status = entities.PostStatusDraft
	}
	if status == entities.PostStatusClosed {
		return nil, domainerrors.ErrInvalidStateTransition
	}

	now := s.clock.Now()
	if !input.DeadlineAt.After(now) {
		return nil, domainerrors.ErrDeadlinePassed
	}

	post := &entities.Post{
		AuthorID:     authorID,
		ProjectType:  input.ProjectType,
		Status:       status,
		ActivityMode: input.ActivityMode,
		Duration:     input.Duration,
		DeadlineAt:   input.DeadlineAt.UTC(),
		Title:        strings.TrimSpace(s.sanitizer.PlainText(input.Title)),
		Content:      s.sanitizer.RichText(input.Content),
		Interests:    input.Interests,
		TechStacks:   input.TechStacks,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := post.ReplaceRoles(input.Roles); err != nil {
		return nil, err
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, infra(err)
	}

	s.logger.Info("post created", "post_id", post.ID, "author_id", authorID, "status", string(post.Status))
	s.reindex(ctx, post)
	return post, nil
}

// Update altera um post do autor; posts CLOSED são imutáveis e a capacidade
// nunca fica abaixo do número de candidatos aceitos
func (s *PostService) Update(ctx context.Context, actorID, postID string, input UpdatePostInput) (*entities.Post, error) {
	var post *entities.Post

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		post, err = s.owned(txCtx, actorID, postID)
		if err != nil {
			return err
		}
		if post.Status == entities.PostStatusClosed {
			return domainerrors.ErrInvalidStateTransition
		}

		if input.ActivityMode != nil {
			post.ActivityMode = *input.ActivityMode
		}
		if input.Duration != nil {
			post.Duration = *input.Duration
		}
		if input.DeadlineAt != nil {
			post.DeadlineAt = input.DeadlineAt.UTC()
		}
		if input.Title != nil {
			post.Title = strings.TrimSpace(s.sanitizer.PlainText(*input.Title))
		}
		if input.Content != nil {
			post.Content = s.sanitizer.RichText(*input.Content)
		}
		if input.Interests != nil {
			post.Interests = input.Interests
		}
		if input.TechStacks != nil {
			post.TechStacks = input.TechStacks
		}
		if input.Roles != nil {
			if err := post.ReplaceRoles(input.Roles); err != nil {
				return err
			}
		}
		if err := post.Validate(); err != nil {
			return err
		}

		post.UpdatedAt = s.clock.Now()
		return infra(s.postRepo.Update(txCtx, post))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post updated", "post_id", post.ID, "version", post.Version)
	s.reindex(ctx, post)
	return post, nil
}

// Publish move o post de DRAFT para OPEN
func (s *PostService) Publish(ctx context.Context, actorID, postID string) (*entities.Post, error) {
	return s.changeStatus(ctx, actorID, postID, (*entities.Post).Publish, events.PostIndexed)
}

// Close encerra o recrutamento (OPEN para CLOSED)
func (s *PostService) Close(ctx context.Context, actorID, postID string) (*entities.Post, error) {
	return s.changeStatus(ctx, actorID, postID, (*entities.Post).Close, events.PostClosed)
}

// Get busca um post por ID
func (s *PostService) Get(ctx context.Context, id string) (*entities.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, infra(err)
	}
	if post == nil {
		return nil, domainerrors.ErrPostNotFound
	}
	return post, nil
}

// List lista posts com filtros
func (s *PostService) List(ctx context.Context, filters repositories.PostFilters) ([]*entities.Post, error) {
	posts, err := s.postRepo.List(ctx, filters)
	if err != nil {
		return nil, infra(err)
	}
	return posts, nil
}

func (s *PostService) changeStatus(
	ctx context.Context,
	actorID, postID string,
	transition func(*entities.Post) error,
	eventType events.Type,
) (*entities.Post, error) {
	var post *entities.Post

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		post, err = s.owned(txCtx, actorID, postID)
		if err != nil {
			return err
		}
		if err := transition(post); err != nil {
			return err
		}
		post.UpdatedAt = s.clock.Now()
		return infra(s.postRepo.Update(txCtx, post))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post status changed", "post_id", post.ID, "status", string(post.Status))
	publish(ctx, s.publisher, s.logger, s.event(eventType, post))
	return post, nil
}

func (s *PostService) owned(ctx context.Context, actorID, postID string) (*entities.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsAuthor(actorID) {
		return nil, domainerrors.ErrForbidden
	}
	return post, nil
}

func (s *PostService) reindex(ctx context.Context, post *entities.Post) {
	publish(ctx, s.publisher, s.logger, s.event(events.PostIndexed, post))
}

func (s *PostService) event(eventType events.Type, post *entities.Post) events.Event {
	return events.Event{
		Type:       eventType,
		PostID:     post.ID,
		AuthorID:   post.AuthorID,
		OccurredAt: s.clock.Now(),
	}
}
