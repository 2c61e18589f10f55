package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/handlers/dto"
	"github.com/rafabene/crewup-backend/internal/handlers/middleware"
	"github.com/rafabene/crewup-backend/internal/services"
)

// ChatHandler lida com salas e mensagens de chat
type ChatHandler struct {
	chatService *services.ChatService
	logger      ports.Logger
}

// NewChatHandler cria um novo ChatHandler
func NewChatHandler(chatService *services.ChatService, logger ports.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

// Initiate abre a sala entre o usuário e o autor do post (idempotente)
//
//	@Summary	Start a chat with a post author
//	@Tags		chat
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.InitiateChatRequest	true	"Post"
//	@Success	200		{object}	dto.ChatRoomResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/chat/rooms [post]
func (h *ChatHandler) Initiate(c *gin.Context) {
	var req dto.InitiateChatRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := h.chatService.InitiateChat(c.Request.Context(), req.PostID, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChatRoomResponse(room))
}

// ListRooms lista as salas do usuário
//
//	@Summary	List my chat rooms
//	@Tags		chat
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	dto.ChatRoomResponse
//	@Router		/chat/rooms [get]
func (h *ChatHandler) ListRooms(c *gin.Context) {
	rooms, err := h.chatService.ListRooms(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChatRoomResponses(rooms))
}

// ListMessages lista mensagens da sala, mais recentes primeiro
//
//	@Summary	List messages of a room
//	@Tags		chat
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path	string	true	"Room ID"
//	@Param		before	query	string	false	"RFC3339 cursor"
//	@Param		limit	query	int		false	"Limit (max 100)"
//	@Success	200		{array}	dto.ChatMessageResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/chat/rooms/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	var query dto.ListMessagesQuery
	if !bindQuery(c, &query) {
		return
	}

	messages, err := h.chatService.ListMessages(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), query.Before, query.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChatMessageResponses(messages))
}

// SendMessage envia uma mensagem; sem room_id a sala é criada a partir de post_id e receiver_id
//
//	@Summary	Send a chat message
//	@Tags		chat
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.SendMessageRequest	true	"Message"
//	@Success	201		{object}	dto.ChatMessageResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/chat/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), middleware.CurrentUserID(c), req.ToSendMessageInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToChatMessageResponse(message))
}
