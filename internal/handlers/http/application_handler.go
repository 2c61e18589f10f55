package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/handlers/dto"
	"github.com/rafabene/crewup-backend/internal/handlers/middleware"
	"github.com/rafabene/crewup-backend/internal/services"
)

// ApplicationHandler lida com elegibilidade e o ciclo de vida das candidaturas
type ApplicationHandler struct {
	applicationService *services.ApplicationService
	eligibilityService *services.EligibilityService
	logger             ports.Logger
}

// NewApplicationHandler cria um novo ApplicationHandler
func NewApplicationHandler(
	applicationService *services.ApplicationService,
	eligibilityService *services.EligibilityService,
	logger ports.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		eligibilityService: eligibilityService,
		logger:             logger,
	}
}

// CanApply verifica se o usuário pode se candidatar à vaga
//
//	@Summary	Check eligibility
//	@Tags		applications
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string	true	"Post ID"
//	@Param		role	query		string	true	"Role (name or code)"
//	@Success	200		{object}	dto.CanApplyResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/posts/{id}/can-apply [get]
func (h *ApplicationHandler) CanApply(c *gin.Context) {
	var query dto.CanApplyQuery
	if !bindQuery(c, &query) {
		return
	}

	result, err := h.eligibilityService.CanApply(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), parseRole(query.Role))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCanApplyResponse(result))
}

// Submit cria uma candidatura
//
//	@Summary	Apply to a post
//	@Tags		applications
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string							true	"Post ID"
//	@Param		request	body		dto.SubmitApplicationRequest	true	"Application"
//	@Success	201		{object}	dto.ApplicationResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/posts/{id}/applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req dto.SubmitApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Submit(c.Request.Context(), middleware.CurrentUserID(c), services.SubmitApplicationInput{
		PostID:  c.Param("id"),
		Role:    parseRole(req.Role),
		Message: req.Message,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToApplicationResponse(application))
}

// ListByPost lista as candidaturas de um post (apenas o autor)
//
//	@Summary	List applications of a post
//	@Tags		applications
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path	string	true	"Post ID"
//	@Param		status	query	string	false	"Status"
//	@Success	200		{array}	dto.ApplicationResponse
//	@Router		/posts/{id}/applications [get]
func (h *ApplicationHandler) ListByPost(c *gin.Context) {
	var query dto.ListApplicationsQuery
	if !bindQuery(c, &query) {
		return
	}

	var status *entities.ApplicationStatus
	if query.Status != "" {
		s := entities.ApplicationStatus(query.Status)
		status = &s
	}

	applications, err := h.applicationService.ListByPost(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponses(applications))
}

// ListMine lista as candidaturas do usuário autenticado
//
//	@Summary	List my applications
//	@Tags		applications
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	dto.ApplicationResponse
//	@Router		/applications/me [get]
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	applications, err := h.applicationService.ListMine(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponses(applications))
}

// Get retorna uma candidatura ao candidato ou ao autor do post
//
//	@Summary	Get an application
//	@Tags		applications
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Application ID"
//	@Success	200	{object}	dto.ApplicationResponse
//	@Router		/applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	application, err := h.applicationService.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponse(application))
}

// Decide aceita ou rejeita uma candidatura SUBMITTED
//
//	@Summary	Accept or reject an application
//	@Tags		applications
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"Application ID"
//	@Param		request	body		dto.DecisionRequest	true	"Decision"
//	@Success	200		{object}	dto.ApplicationResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/applications/{id}/decision [post]
func (h *ApplicationHandler) Decide(c *gin.Context) {
	var req dto.DecisionRequest
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Decide(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), entities.Decision(req.Decision))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponse(application))
}

// Withdraw retira a candidatura do usuário
//
//	@Summary	Withdraw an application
//	@Tags		applications
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Application ID"
//	@Success	200	{object}	dto.ApplicationResponse
//	@Router		/applications/{id}/withdraw [post]
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	application, err := h.applicationService.Withdraw(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponse(application))
}

// parseRole aceita o nome (BACKEND) ou o código (BE); valores desconhecidos seguem como estão
func parseRole(value string) entities.Role {
	if role, ok := entities.ParseRole(value); ok {
		return role
	}
	return entities.Role(value)
}
