package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/handlers/dto"
	"github.com/rafabene/crewup-backend/internal/handlers/middleware"
	"github.com/rafabene/crewup-backend/internal/services"
)

// PostHandler lida com o ciclo de vida dos posts de recrutamento
type PostHandler struct {
	postService *services.PostService
	logger      ports.Logger
}

// NewPostHandler cria um novo PostHandler
func NewPostHandler(postService *services.PostService, logger ports.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// Create cria um post em DRAFT ou OPEN
//
//	@Summary	Create a post
//	@Tags		posts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.CreatePostRequest	true	"Post"
//	@Success	201		{object}	dto.PostResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Create(c.Request.Context(), middleware.CurrentUserID(c), req.ToPostInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPostResponse(post))
}

// Get retorna um post
//
//	@Summary	Get a post
//	@Tags		posts
//	@Produce	json
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{object}	dto.PostResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// List lista posts com filtros
//
//	@Summary	List posts
//	@Tags		posts
//	@Produce	json
//	@Param		status			query	string	false	"DRAFT, OPEN or CLOSED"
//	@Param		project_type	query	string	false	"PROJECT or STUDY"
//	@Param		activity_mode	query	string	false	"ONLINE, OFFLINE or HYBRID"
//	@Param		role			query	string	false	"Role"
//	@Param		tech_stack		query	string	false	"Tech stack"
//	@Param		author_id		query	string	false	"Author"
//	@Param		page			query	int		false	"Page"
//	@Param		pageSize		query	int		false	"Page size"
//	@Success	200				{array}	dto.PostResponse
//	@Router		/posts [get]
func (h *PostHandler) List(c *gin.Context) {
	var query dto.ListPostsQuery
	if !bindQuery(c, &query) {
		return
	}

	posts, err := h.postService.List(c.Request.Context(), query.ToPostFilters())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponses(posts))
}

// Update altera um post DRAFT ou OPEN do autor
//
//	@Summary	Update a post
//	@Tags		posts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string					true	"Post ID"
//	@Param		request	body		dto.UpdatePostRequest	true	"Fields"
//	@Success	200		{object}	dto.PostResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/posts/{id} [patch]
func (h *PostHandler) Update(c *gin.Context) {
	var req dto.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), req.ToUpdatePostInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// Publish abre um post em DRAFT para candidaturas
//
//	@Summary	Publish a post
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{object}	dto.PostResponse
//	@Router		/posts/{id}/publish [post]
func (h *PostHandler) Publish(c *gin.Context) {
	post, err := h.postService.Publish(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// Close encerra o recrutamento
//
//	@Summary	Close a post
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{object}	dto.PostResponse
//	@Router		/posts/{id}/close [post]
func (h *PostHandler) Close(c *gin.Context) {
	post, err := h.postService.Close(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}
