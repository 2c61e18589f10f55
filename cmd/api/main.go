// @title						CrewUp API
// @version					1.0
// @description				Team matching backend: profiles, recruitment posts, applications, notifications and chat.
// @BasePath					/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/rafabene/crewup-backend/docs"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	httphandlers "github.com/rafabene/crewup-backend/internal/handlers/http"
	"github.com/rafabene/crewup-backend/internal/infrastructure/auth"
	"github.com/rafabene/crewup-backend/internal/infrastructure/config"
	"github.com/rafabene/crewup-backend/internal/infrastructure/events"
	"github.com/rafabene/crewup-backend/internal/infrastructure/i18n"
	"github.com/rafabene/crewup-backend/internal/infrastructure/logging"
	"github.com/rafabene/crewup-backend/internal/infrastructure/oauth"
	"github.com/rafabene/crewup-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/crewup-backend/internal/infrastructure/realtime"
	"github.com/rafabene/crewup-backend/internal/infrastructure/sanitize"
	"github.com/rafabene/crewup-backend/internal/infrastructure/storage"
	"github.com/rafabene/crewup-backend/internal/infrastructure/validation"
	"github.com/rafabene/crewup-backend/internal/services"
)

var version = "dev"

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting crewup backend",
		"env", cfg.Env,
		"version", version,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewEmbeddedService(cfg.I18n.DefaultLanguage)
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	if err := validation.RegisterGin(); err != nil {
		log.Fatal(err)
	}

	// Barramento de eventos e hub websocket
	bus, err := events.NewBus(ctx, cfg.Events, logger.With("component", "events"))
	if err != nil {
		logger.Error("failed to initialize event bus", "driver", cfg.Events.Driver, "error", err)
		log.Fatal(err)
	}
	hub := realtime.NewHub(cfg.CORS.Origins(), logger.With("component", "realtime"))

	imageStorage, err := storage.NewS3ImageStorage(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to initialize image storage", "error", err)
		log.Fatal(err)
	}

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	postRepo := postgres.NewPostRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	bookmarkRepo := postgres.NewBookmarkRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	chatRepo := postgres.NewChatRepository(db)
	searchRepo := postgres.NewSearchRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	clock := ports.SystemClock
	sanitizer := sanitize.New()
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry)

	userService := services.NewUserService(userRepo, uow, auth.NewBcryptHasher(0), tokens, clock, logger)
	profileService := services.NewProfileService(profileRepo, userRepo, imageStorage, uow, sanitizer, clock, logger)
	postService := services.NewPostService(postRepo, userRepo, uow, bus, sanitizer, clock, logger)
	eligibilityService := services.NewEligibilityService(userRepo, postRepo, applicationRepo, clock)
	applicationService := services.NewApplicationService(applicationRepo, postRepo, eligibilityService, uow, bus, sanitizer, clock, logger)
	bookmarkService := services.NewBookmarkService(bookmarkRepo, postRepo, clock, logger)
	searchService := services.NewSearchService(searchRepo, postRepo)
	notificationService := services.NewNotificationService(notificationRepo, postRepo, profileRepo, userRepo, hub, i18nService, logger)
	chatService := services.NewChatService(chatRepo, postRepo, notificationService, hub, sanitizer, i18nService, clock, logger)

	bus.Subscribe(services.NewLifecycleBridge(notificationService, chatService, searchService, postRepo, i18nService, logger.With("component", "lifecycle_bridge")))

	busDone := make(chan struct{})
	go func() {
		defer close(busDone)
		if err := bus.Run(ctx); err != nil {
			logger.Error("event bus stopped", "error", err)
		}
	}()

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterConfig{
		BaseURL:       cfg.Server.BaseURL,
		Origins:       cfg.CORS.Origins(),
		I18n:          i18nService,
		Authenticator: userService,
		Logger:        logger,
		Swagger:       !cfg.IsProduction(),
	}, httphandlers.Handlers{
		User:         httphandlers.NewUserHandler(userService, logger),
		OAuth:        httphandlers.NewOAuthHandler(userService, oauth.NewRegistry(cfg.OAuth), oauth.NewStateStore(cfg.Session.Secret, cfg.Session.Secure), logger),
		Profile:      httphandlers.NewProfileHandler(profileService, logger),
		Post:         httphandlers.NewPostHandler(postService, logger),
		Application:  httphandlers.NewApplicationHandler(applicationService, eligibilityService, logger),
		Bookmark:     httphandlers.NewBookmarkHandler(bookmarkService, logger),
		Notification: httphandlers.NewNotificationHandler(notificationService, logger),
		Chat:         httphandlers.NewChatHandler(chatService, logger),
		Search:       httphandlers.NewSearchHandler(searchService, logger),
		Realtime:     httphandlers.NewRealtimeHandler(hub, chatService, logger),
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	<-busDone
	if err := bus.Close(); err != nil {
		logger.Warn("failed to close event bus", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server exited")
}
