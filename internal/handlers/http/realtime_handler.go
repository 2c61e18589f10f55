package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/handlers/middleware"
	"github.com/rafabene/crewup-backend/internal/infrastructure/realtime"
	"github.com/rafabene/crewup-backend/internal/services"
)

// RealtimeHandler faz o upgrade para websocket e inscreve o cliente nos tópicos
type RealtimeHandler struct {
	hub         *realtime.Hub
	chatService *services.ChatService
	logger      ports.Logger
}

// NewRealtimeHandler cria um novo RealtimeHandler
func NewRealtimeHandler(hub *realtime.Hub, chatService *services.ChatService, logger ports.Logger) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, chatService: chatService, logger: logger}
}

// Notifications inscreve o cliente no tópico pessoal (user:<id>)
//
//	@Summary	Realtime notifications (websocket)
//	@Tags		realtime
//	@Security	BearerAuth
//	@Success	101
//	@Router		/ws/notifications [get]
func (h *RealtimeHandler) Notifications(c *gin.Context) {
	h.serve(c, services.UserTopic(middleware.CurrentUserID(c)))
}

// Room inscreve um participante no tópico da sala (room:<id>)
//
//	@Summary	Realtime chat room (websocket)
//	@Tags		realtime
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Room ID"
//	@Success	101
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/ws/chat/{id} [get]
func (h *RealtimeHandler) Room(c *gin.Context) {
	room, err := h.chatService.Room(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.serve(c, services.RoomTopic(room.ID))
}

func (h *RealtimeHandler) serve(c *gin.Context, topics ...string) {
	// Serve bloqueia até o cliente desconectar; erros de upgrade já foram respondidos pelo upgrader
	if err := h.hub.Serve(c.Writer, c.Request, topics...); err != nil {
		h.logger.Debug("websocket upgrade failed", "topics", topics, "error", err)
	}
}
