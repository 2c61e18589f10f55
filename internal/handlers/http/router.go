package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/handlers/middleware"
	"github.com/rafabene/crewup-backend/internal/infrastructure/i18n"
)

// Handlers agrupa os handlers registrados no router
type Handlers struct {
	User         *UserHandler
	OAuth        *OAuthHandler
	Profile      *ProfileHandler
	Post         *PostHandler
	Application  *ApplicationHandler
	Bookmark     *BookmarkHandler
	Notification *NotificationHandler
	Chat         *ChatHandler
	Search       *SearchHandler
	Realtime     *RealtimeHandler
}

// RouterConfig contém as dependências transversais do router
type RouterConfig struct {
	BaseURL       string
	Origins       []string
	I18n          *i18n.Service
	Authenticator middleware.Authenticator
	Logger        ports.Logger
	Swagger       bool
}

// NewRouter monta o engine do gin com middlewares e rotas /api/v1
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(cfg.Logger))

	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.BaseURL)
		c.Next()
	})
	router.Use(middleware.Language(cfg.I18n))
	router.Use(middleware.CORS(cfg.Origins))

	router.NoRoute(NoRoute)
	router.GET("/health", Health)
	if cfg.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := middleware.Auth(cfg.Authenticator, NewErrorResponder(cfg.Logger))

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		authGroup.POST("/register", h.User.Register)
		authGroup.POST("/login", h.User.Login)
		if h.OAuth != nil {
			authGroup.GET("/oauth/:provider", h.OAuth.Start)
			authGroup.GET("/oauth/:provider/callback", h.OAuth.Callback)
		}

		users := v1.Group("/users", auth)
		users.GET("", h.User.ListUsers)
		users.GET("/me", h.User.Me)
		users.DELETE("/me", h.User.Withdraw)
		users.GET("/:id", h.User.GetUser)

		profiles := v1.Group("/profiles", auth)
		profiles.POST("", h.Profile.Create)
		profiles.GET("/me", h.Profile.GetMine)
		profiles.PATCH("/me", h.Profile.Update)
		profiles.POST("/me/interests", h.Profile.AddInterest)
		profiles.DELETE("/me/interests/:interest", h.Profile.RemoveInterest)
		profiles.POST("/me/tech-stacks", h.Profile.AddTechStack)
		profiles.DELETE("/me/tech-stacks/:techStack", h.Profile.RemoveTechStack)
		profiles.PUT("/me/role", h.Profile.UpdateRole)
		profiles.POST("/me/avatar", h.Profile.UploadAvatar)
		profiles.GET("/me/proposal-settings", h.Profile.GetProposalSettings)
		profiles.PATCH("/me/proposal-settings", h.Profile.UpdateProposalSettings)
		profiles.GET("/:id", h.Profile.Get)

		// Leitura de posts e busca são públicas
		v1.GET("/posts", h.Post.List)
		v1.GET("/posts/:id", h.Post.Get)
		v1.GET("/search/posts", h.Search.Search)

		posts := v1.Group("/posts", auth)
		posts.POST("", h.Post.Create)
		posts.PATCH("/:id", h.Post.Update)
		posts.POST("/:id/publish", h.Post.Publish)
		posts.POST("/:id/close", h.Post.Close)
		posts.GET("/:id/can-apply", h.Application.CanApply)
		posts.POST("/:id/applications", h.Application.Submit)
		posts.GET("/:id/applications", h.Application.ListByPost)
		posts.POST("/:id/bookmark", h.Bookmark.Toggle)
		posts.DELETE("/:id/bookmark", h.Bookmark.Delete)

		applications := v1.Group("/applications", auth)
		applications.GET("/me", h.Application.ListMine)
		applications.GET("/:id", h.Application.Get)
		applications.POST("/:id/decision", h.Application.Decide)
		applications.POST("/:id/withdraw", h.Application.Withdraw)

		v1.GET("/bookmarks", auth, h.Bookmark.List)

		notifications := v1.Group("/notifications", auth)
		notifications.GET("", h.Notification.List)
		notifications.POST("/read-all", h.Notification.MarkAllRead)
		notifications.POST("/:id/read", h.Notification.MarkRead)
		notifications.DELETE("/:id", h.Notification.Delete)
		v1.POST("/proposals", auth, h.Notification.Propose)

		chat := v1.Group("/chat", auth)
		chat.POST("/rooms", h.Chat.Initiate)
		chat.GET("/rooms", h.Chat.ListRooms)
		chat.GET("/rooms/:id/messages", h.Chat.ListMessages)
		chat.POST("/messages", h.Chat.SendMessage)

		if h.Realtime != nil {
			ws := v1.Group("/ws", auth)
			ws.GET("/notifications", h.Realtime.Notifications)
			ws.GET("/chat/:id", h.Realtime.Room)
		}
	}

	return router
}

// requestLogger registra método, rota, status e latência de cada requisição
func requestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"client_ip", c.ClientIP(),
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if status >= http.StatusInternalServerError {
			logger.Warn("request completed", args...)
			return
		}
		logger.Debug("request completed", args...)
	}
}
