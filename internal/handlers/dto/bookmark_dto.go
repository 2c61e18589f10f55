package dto

import (
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// BookmarkToggleResponse informa o estado após o toggle
type BookmarkToggleResponse struct {
	PostID     string `json:"post_id"`
	Bookmarked bool   `json:"bookmarked"`
}

// BookmarkResponse representa um bookmark
type BookmarkResponse struct {
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchQuery é a consulta de busca textual
type SearchQuery struct {
	PageQuery
	Q string `form:"q" binding:"max=200"`
}

// SearchResultResponse é um documento encontrado na busca
type SearchResultResponse struct {
	PostID      string `json:"post_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ToBookmarkResponses converte uma lista de bookmarks
func ToBookmarkResponses(bookmarks []*entities.Bookmark) []BookmarkResponse {
	responses := make([]BookmarkResponse, len(bookmarks))
	for i, bookmark := range bookmarks {
		responses[i] = BookmarkResponse{PostID: bookmark.PostID, CreatedAt: bookmark.CreatedAt}
	}
	return responses
}

// ToSearchResultResponses converte os documentos de busca
func ToSearchResultResponses(docs []repositories.SearchDocument) []SearchResultResponse {
	responses := make([]SearchResultResponse, len(docs))
	for i, doc := range docs {
		responses[i] = SearchResultResponse{PostID: doc.PostID, Title: doc.Title, Description: doc.Description}
	}
	return responses
}
