package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/handlers/dto"
	"github.com/rafabene/crewup-backend/internal/services"
)

// SearchHandler expõe a busca textual de posts abertos
type SearchHandler struct {
	searchService *services.SearchService
	logger        ports.Logger
}

// NewSearchHandler cria um novo SearchHandler
func NewSearchHandler(searchService *services.SearchService, logger ports.Logger) *SearchHandler {
	return &SearchHandler{searchService: searchService, logger: logger}
}

// Search busca posts por título e descrição
//
//	@Summary	Search open posts
//	@Tags		search
//	@Produce	json
//	@Param		q			query	string	false	"Query"
//	@Param		page		query	int		false	"Page"
//	@Param		pageSize	query	int		false	"Page size"
//	@Success	200			{array}	dto.SearchResultResponse
//	@Router		/search/posts [get]
func (h *SearchHandler) Search(c *gin.Context) {
	var query dto.SearchQuery
	if !bindQuery(c, &query) {
		return
	}

	docs, err := h.searchService.Search(c.Request.Context(), query.Q, query.Page, query.PageSize)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSearchResultResponses(docs))
}
