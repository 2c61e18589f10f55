package services

import (
	"context"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// BookmarkService gerencia posts salvos pelos usuários
type BookmarkService struct {
	bookmarkRepo repositories.BookmarkRepository
	postRepo     repositories.PostRepository
	clock        ports.Clock
	logger       ports.Logger
}

// NewBookmarkService cria um novo BookmarkService
func NewBookmarkService(
	bookmarkRepo repositories.BookmarkRepository,
	postRepo repositories.PostRepository,
	clock ports.Clock,
	logger ports.Logger,
) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		postRepo:     postRepo,
		clock:        clock,
		logger:       logger,
	}
}

// Toggle salva o post se ainda não estiver salvo, senão remove.
// Retorna o estado final (true = salvo).
func (s *BookmarkService) Toggle(ctx context.Context, userID, postID string) (bool, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return false, infra(err)
	}
	if post == nil {
		return false, domainerrors.ErrPostNotFound
	}

	exists, err := s.bookmarkRepo.Exists(ctx, userID, postID)
	if err != nil {
		return false, infra(err)
	}

	if exists {
		if _, err := s.bookmarkRepo.Delete(ctx, userID, postID); err != nil {
			return false, infra(err)
		}
		s.logger.Debug("bookmark removed", "user_id", userID, "post_id", postID)
		return false, nil
	}

	bookmark := &entities.Bookmark{UserID: userID, PostID: postID, CreatedAt: s.clock.Now()}
	if err := s.bookmarkRepo.Create(ctx, bookmark); err != nil {
		return false, infra(err)
	}
	s.logger.Debug("bookmark added", "user_id", userID, "post_id", postID)
	return true, nil
}

// Delete remove o bookmark; remover algo inexistente não é erro
func (s *BookmarkService) Delete(ctx context.Context, userID, postID string) error {
	if _, err := s.bookmarkRepo.Delete(ctx, userID, postID); err != nil {
		return infra(err)
	}
	return nil
}

// List lista os bookmarks do usuário, mais recentes primeiro
func (s *BookmarkService) List(ctx context.Context, userID string, page, pageSize int) ([]*entities.Bookmark, error) {
	bookmarks, err := s.bookmarkRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, infra(err)
	}
	return bookmarks, nil
}
