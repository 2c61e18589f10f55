package services

import (
	"context"
	"strings"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// SearchService mantém e consulta o índice de busca de posts
type SearchService struct {
	searchRepo repositories.SearchRepository
	postRepo   repositories.PostRepository
}

// NewSearchService cria um novo SearchService
func NewSearchService(searchRepo repositories.SearchRepository, postRepo repositories.PostRepository) *SearchService {
	return &SearchService{searchRepo: searchRepo, postRepo: postRepo}
}

// IndexPost projeta o estado atual do post no índice.
// Apenas posts OPEN ficam indexados; rascunhos, encerrados e inexistentes saem do índice.
func (s *SearchService) IndexPost(ctx context.Context, postID string) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return infra(err)
	}
	if post == nil || post.Status != entities.PostStatusOpen {
		return infra(s.searchRepo.Remove(ctx, postID))
	}

	return infra(s.searchRepo.Index(ctx, repositories.SearchDocument{
		PostID:      post.ID,
		Title:       post.Title,
		Description: post.Content,
		Status:      post.Status,
	}))
}

// Search busca posts OPEN por título ou descrição
func (s *SearchService) Search(ctx context.Context, query string, page, pageSize int) ([]repositories.SearchDocument, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []repositories.SearchDocument{}, nil
	}

	docs, err := s.searchRepo.Search(ctx, query, page, pageSize)
	if err != nil {
		return nil, infra(err)
	}
	return docs, nil
}
