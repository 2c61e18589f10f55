package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/handlers/dto"
	"github.com/rafabene/crewup-backend/internal/infrastructure/oauth"
	"github.com/rafabene/crewup-backend/internal/services"
)

// OAuthHandler conduz o fluxo authorization code com os provedores configurados
type OAuthHandler struct {
	userService *services.UserService
	providers   *oauth.Registry
	states      *oauth.StateStore
	logger      ports.Logger
}

// NewOAuthHandler cria um novo OAuthHandler
func NewOAuthHandler(
	userService *services.UserService,
	providers *oauth.Registry,
	states *oauth.StateStore,
	logger ports.Logger,
) *OAuthHandler {
	return &OAuthHandler{
		userService: userService,
		providers:   providers,
		states:      states,
		logger:      logger,
	}
}

// Start redireciona para a tela de consentimento do provedor
//
//	@Summary	Start OAuth login
//	@Tags		auth
//	@Param		provider	path	string	true	"google, github or kakao"
//	@Success	307
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/auth/oauth/{provider} [get]
func (h *OAuthHandler) Start(c *gin.Context) {
	provider, ok := h.providers.Get(c.Param("provider"))
	if !ok {
		respondError(c, h.logger, domainerrors.ErrOAuthProviderNotFound)
		return
	}

	state, err := h.states.Issue(c.Writer, c.Request)
	if err != nil {
		respondError(c, h.logger, domainerrors.Infrastructure(err))
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, provider.AuthCodeURL(state))
}

// Callback valida o state, troca o code e emite o token da API
//
//	@Summary	OAuth callback
//	@Tags		auth
//	@Produce	json
//	@Param		provider	path		string	true	"google, github or kakao"
//	@Param		code		query		string	true	"Authorization code"
//	@Param		state		query		string	true	"State"
//	@Success	200			{object}	dto.AuthResponse
//	@Failure	401			{object}	dto.ErrorResponse
//	@Router		/auth/oauth/{provider}/callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	provider, ok := h.providers.Get(c.Param("provider"))
	if !ok {
		respondError(c, h.logger, domainerrors.ErrOAuthProviderNotFound)
		return
	}

	if err := h.states.Validate(c.Writer, c.Request, c.Query("state")); err != nil {
		respondError(c, h.logger, domainerrors.ErrOAuthFailed)
		return
	}

	code := c.Query("code")
	if code == "" {
		respondError(c, h.logger, domainerrors.ErrOAuthFailed)
		return
	}

	identity, err := provider.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Warn("oauth exchange failed", "provider", provider.Name, "error", err)
		respondError(c, h.logger, domainerrors.ErrOAuthFailed)
		return
	}

	result, err := h.userService.LoginWithOAuth(c.Request.Context(), *identity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthResponse(result))
}
