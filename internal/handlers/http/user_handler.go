package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
	"github.com/rafabene/crewup-backend/internal/handlers/dto"
	"github.com/rafabene/crewup-backend/internal/handlers/middleware"
	"github.com/rafabene/crewup-backend/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários e autenticação local
type UserHandler struct {
	userService *services.UserService
	logger      ports.Logger
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, logger ports.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// Register cria um novo usuário com senha
//
//	@Summary	Register a user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CreateUserRequest	true	"User data"
//	@Success	201		{object}	dto.AuthResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.userService.Register(c.Request.Context(), services.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAuthResponse(result))
}

// Login autentica com e-mail e senha
//
//	@Summary	Login with email and password
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.LoginRequest	true	"Credentials"
//	@Success	200		{object}	dto.AuthResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Router		/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthResponse(result))
}

// Me retorna o usuário autenticado
//
//	@Summary	Current user
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.UserResponse
//	@Router		/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToUserResponse(middleware.CurrentUser(c)))
}

// Withdraw encerra a conta do usuário autenticado
//
//	@Summary	Withdraw the current account
//	@Tags		users
//	@Security	BearerAuth
//	@Success	204
//	@Router		/users/me [delete]
func (h *UserHandler) Withdraw(c *gin.Context) {
	if err := h.userService.Withdraw(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetUser busca um usuário por ID
//
//	@Summary	Get a user
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	dto.UserResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListUsers lista usuários (apenas ativos, salvo filtro explícito)
//
//	@Summary	List users
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		status		query	string	false	"ACTIVE or WITHDRAWN"
//	@Param		page		query	int		false	"Page"
//	@Param		pageSize	query	int		false	"Page size"
//	@Success	200			{array}	dto.UserResponse
//	@Router		/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var query dto.ListUsersQuery
	if !bindQuery(c, &query) {
		return
	}

	filters := repositories.UserFilters{Page: query.Page, PageSize: query.PageSize}
	if query.Status != "" {
		status := entities.UserStatus(query.Status)
		filters.Status = &status
	}

	users, err := h.userService.ListUsers(c.Request.Context(), filters)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}
