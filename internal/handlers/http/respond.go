package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/handlers/dto"
	"github.com/rafabene/crewup-backend/internal/handlers/middleware"
)

// writeProblem escreve a resposta com o media type de Problem Details
func writeProblem(c *gin.Context, response dto.ErrorResponse) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.JSON(response.Status, response)
}

// respondError traduz um erro de serviço; falhas de infraestrutura são logadas e viram 500
func respondError(c *gin.Context, logger ports.Logger, err error) {
	if domainerrors.IsInfrastructure(err) {
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	writeProblem(c, dto.DomainErrorResponse(c, err))
}

// NewErrorResponder adapta respondError para o middleware de autenticação
func NewErrorResponder(logger ports.Logger) middleware.ErrorResponder {
	return func(c *gin.Context, err error) {
		respondError(c, logger, err)
	}
}

// bindJSON faz o binding do corpo e responde 400 em caso de erro
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeProblem(c, dto.BindingErrorResponse(c, err))
		return false
	}
	return true
}

// bindQuery faz o binding da query string e responde 400 em caso de erro
func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		writeProblem(c, dto.BindingErrorResponse(c, err))
		return false
	}
	return true
}

// NoRoute responde 404 no formato de Problem Details
func NoRoute(c *gin.Context) {
	writeProblem(c, dto.NotFoundErrorResponseI18n(c, c.Request.URL.Path))
}

// Health informa que a API está no ar
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "crewup-backend"})
}
