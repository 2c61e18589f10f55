package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/handlers/dto"
	"github.com/rafabene/crewup-backend/internal/handlers/middleware"
	"github.com/rafabene/crewup-backend/internal/services"
)

// BookmarkHandler lida com os posts salvos do usuário
type BookmarkHandler struct {
	bookmarkService *services.BookmarkService
	logger          ports.Logger
}

// NewBookmarkHandler cria um novo BookmarkHandler
func NewBookmarkHandler(bookmarkService *services.BookmarkService, logger ports.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService: bookmarkService,
		logger:          logger,
	}
}

// Toggle salva o post, ou remove se já estiver salvo
//
//	@Summary	Toggle a bookmark
//	@Tags		bookmarks
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{object}	dto.BookmarkToggleResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/posts/{id}/bookmark [post]
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	postID := c.Param("id")

	bookmarked, err := h.bookmarkService.Toggle(c.Request.Context(), middleware.CurrentUserID(c), postID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.BookmarkToggleResponse{PostID: postID, Bookmarked: bookmarked})
}

// Delete remove o bookmark (idempotente)
//
//	@Summary	Remove a bookmark
//	@Tags		bookmarks
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Post ID"
//	@Success	204
//	@Router		/posts/{id}/bookmark [delete]
func (h *BookmarkHandler) Delete(c *gin.Context) {
	if err := h.bookmarkService.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List lista os bookmarks do usuário
//
//	@Summary	List my bookmarks
//	@Tags		bookmarks
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page		query	int	false	"Page"
//	@Param		pageSize	query	int	false	"Page size"
//	@Success	200			{array}	dto.BookmarkResponse
//	@Router		/bookmarks [get]
func (h *BookmarkHandler) List(c *gin.Context) {
	var query dto.PageQuery
	if !bindQuery(c, &query) {
		return
	}

	bookmarks, err := h.bookmarkService.List(c.Request.Context(), middleware.CurrentUserID(c), query.Page, query.PageSize)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookmarkResponses(bookmarks))
}
