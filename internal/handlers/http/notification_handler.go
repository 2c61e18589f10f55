package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
	"github.com/rafabene/crewup-backend/internal/handlers/dto"
	"github.com/rafabene/crewup-backend/internal/handlers/middleware"
	"github.com/rafabene/crewup-backend/internal/services"
)

// NotificationHandler lida com a caixa de notificações e as propostas
type NotificationHandler struct {
	notificationService *services.NotificationService
	logger              ports.Logger
}

// NewNotificationHandler cria um novo NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService, logger ports.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// List lista as notificações do usuário, mais recentes primeiro
//
//	@Summary	List my notifications
//	@Tags		notifications
//	@Produce	json
//	@Security	BearerAuth
//	@Param		unread_only	query	bool	false	"Only unread"
//	@Param		page		query	int		false	"Page"
//	@Param		pageSize	query	int		false	"Page size"
//	@Success	200			{array}	dto.NotificationResponse
//	@Router		/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var query dto.ListNotificationsQuery
	if !bindQuery(c, &query) {
		return
	}

	notifications, err := h.notificationService.List(c.Request.Context(), repositories.NotificationFilters{
		ReceiverID: middleware.CurrentUserID(c),
		UnreadOnly: query.UnreadOnly,
		Page:       query.Page,
		PageSize:   query.PageSize,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationResponses(notifications))
}

// MarkRead marca uma notificação como lida
//
//	@Summary	Mark a notification as read
//	@Tags		notifications
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Notification ID"
//	@Success	200	{object}	dto.NotificationResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notification, err := h.notificationService.MarkRead(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationResponse(notification))
}

// MarkAllRead marca todas as notificações como lidas
//
//	@Summary	Mark all notifications as read
//	@Tags		notifications
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.MarkAllReadResponse
//	@Router		/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.notificationService.MarkAllRead(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}

// Delete remove uma notificação
//
//	@Summary	Delete a notification
//	@Tags		notifications
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Notification ID"
//	@Success	204
//	@Router		/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.notificationService.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Propose envia a proposta de um post do autor a outro usuário
//
//	@Summary	Propose a post to a user
//	@Tags		notifications
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.ProposalRequest	true	"Proposal"
//	@Success	201		{object}	dto.NotificationResponse
//	@Success	204
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/proposals [post]
func (h *NotificationHandler) Propose(c *gin.Context) {
	var req dto.ProposalRequest
	if !bindJSON(c, &req) {
		return
	}

	notification, err := h.notificationService.Propose(c.Request.Context(), middleware.CurrentUserID(c), req.PostID, req.TargetUserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	// Proposta repetida: a notificação já existe
	if notification == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, dto.ToNotificationResponse(notification))
}
