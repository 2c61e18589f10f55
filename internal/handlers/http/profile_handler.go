package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/handlers/dto"
	"github.com/rafabene/crewup-backend/internal/handlers/middleware"
	"github.com/rafabene/crewup-backend/internal/services"
)

const maxAvatarSize = 5 << 20

// ProfileHandler lida com perfil, atributos e opt-ins de proposta
type ProfileHandler struct {
	profileService *services.ProfileService
	logger         ports.Logger
}

// NewProfileHandler cria um novo ProfileHandler
func NewProfileHandler(profileService *services.ProfileService, logger ports.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// Create cria o perfil do usuário autenticado
//
//	@Summary	Create my profile
//	@Tags		profiles
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.CreateProfileRequest	true	"Profile"
//	@Success	201		{object}	dto.ProfileResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/profiles [post]
func (h *ProfileHandler) Create(c *gin.Context) {
	var req dto.CreateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.Create(c.Request.Context(), middleware.CurrentUserID(c), req.ToCreateProfileInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProfileResponse(profile))
}

// GetMine retorna o perfil do usuário autenticado
//
//	@Summary	Get my profile
//	@Tags		profiles
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.ProfileResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/profiles/me [get]
func (h *ProfileHandler) GetMine(c *gin.Context) {
	profile, err := h.profileService.GetByUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// Get retorna um perfil por ID
//
//	@Summary	Get a profile
//	@Tags		profiles
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Profile ID"
//	@Success	200	{object}	dto.ProfileResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/profiles/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// Update altera nickname e bio
//
//	@Summary	Update my profile
//	@Tags		profiles
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.UpdateProfileRequest	true	"Fields"
//	@Success	200		{object}	dto.ProfileResponse
//	@Router		/profiles/me [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), middleware.CurrentUserID(c), services.UpdateProfileInput{
		Nickname: req.Nickname,
		Bio:      req.Bio,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// AddInterest adiciona um interesse (máximo 5)
//
//	@Summary	Add an interest
//	@Tags		profiles
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.InterestRequest	true	"Interest"
//	@Success	200		{object}	dto.ProfileResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/profiles/me/interests [post]
func (h *ProfileHandler) AddInterest(c *gin.Context) {
	var req dto.InterestRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respondProfile(c)(h.profileService.AddInterest(c.Request.Context(), middleware.CurrentUserID(c), entities.Interest(req.Interest)))
}

// RemoveInterest remove um interesse; o último não pode ser removido
//
//	@Summary	Remove an interest
//	@Tags		profiles
//	@Produce	json
//	@Security	BearerAuth
//	@Param		interest	path		string	true	"Interest"
//	@Success	200			{object}	dto.ProfileResponse
//	@Failure	409			{object}	dto.ErrorResponse
//	@Router		/profiles/me/interests/{interest} [delete]
func (h *ProfileHandler) RemoveInterest(c *gin.Context) {
	h.respondProfile(c)(h.profileService.RemoveInterest(c.Request.Context(), middleware.CurrentUserID(c), entities.Interest(c.Param("interest"))))
}

// AddTechStack adiciona uma tecnologia (máximo 5)
//
//	@Summary	Add a tech stack
//	@Tags		profiles
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.TechStackRequest	true	"Tech stack"
//	@Success	200		{object}	dto.ProfileResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/profiles/me/tech-stacks [post]
func (h *ProfileHandler) AddTechStack(c *gin.Context) {
	var req dto.TechStackRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respondProfile(c)(h.profileService.AddTechStack(c.Request.Context(), middleware.CurrentUserID(c), entities.TechStack(req.TechStack)))
}

// RemoveTechStack remove uma tecnologia; a última não pode ser removida
//
//	@Summary	Remove a tech stack
//	@Tags		profiles
//	@Produce	json
//	@Security	BearerAuth
//	@Param		techStack	path		string	true	"Tech stack"
//	@Success	200			{object}	dto.ProfileResponse
//	@Router		/profiles/me/tech-stacks/{techStack} [delete]
func (h *ProfileHandler) RemoveTechStack(c *gin.Context) {
	h.respondProfile(c)(h.profileService.RemoveTechStack(c.Request.Context(), middleware.CurrentUserID(c), entities.TechStack(c.Param("techStack"))))
}

// UpdateRole substitui a role do perfil
//
//	@Summary	Replace my role
//	@Tags		profiles
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.RoleRequest	true	"Role"
//	@Success	200		{object}	dto.ProfileResponse
//	@Router		/profiles/me/role [put]
func (h *ProfileHandler) UpdateRole(c *gin.Context) {
	var req dto.RoleRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respondProfile(c)(h.profileService.UpdateRole(c.Request.Context(), middleware.CurrentUserID(c), entities.Role(req.Role)))
}

// UploadAvatar recebe a imagem em multipart (campo "file")
//
//	@Summary	Upload my avatar
//	@Tags		profiles
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		file	formData	file	true	"Image"
//	@Success	200		{object}	dto.ProfileResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/profiles/me/avatar [post]
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarSize+1<<10)

	header, err := c.FormFile("file")
	if err != nil || header.Size > maxAvatarSize {
		respondError(c, h.logger, domainerrors.ErrInvalidAvatar)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.logger, domainerrors.ErrInvalidAvatar)
		return
	}
	defer func() { _ = file.Close() }()

	profile, err := h.profileService.UploadAvatar(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
	)
	h.respondProfile(c)(profile, err)
}

// GetProposalSettings retorna os opt-ins de proposta
//
//	@Summary	Get my proposal settings
//	@Tags		profiles
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.ProposalSettingsResponse
//	@Router		/profiles/me/proposal-settings [get]
func (h *ProfileHandler) GetProposalSettings(c *gin.Context) {
	settings, err := h.profileService.GetProposalSettings(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProposalSettingsResponse(settings))
}

// UpdateProposalSettings altera os opt-ins de proposta
//
//	@Summary	Update my proposal settings
//	@Tags		profiles
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.ProposalSettingsRequest	true	"Toggles"
//	@Success	200		{object}	dto.ProposalSettingsResponse
//	@Router		/profiles/me/proposal-settings [patch]
func (h *ProfileHandler) UpdateProposalSettings(c *gin.Context) {
	var req dto.ProposalSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	settings, err := h.profileService.UpdateProposalSettings(c.Request.Context(), middleware.CurrentUserID(c), services.UpdateProposalSettingsInput{
		ProjectProposalEnabled: req.ProjectProposalEnabled,
		StudyProposalEnabled:   req.StudyProposalEnabled,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProposalSettingsResponse(settings))
}

func (h *ProfileHandler) respondProfile(c *gin.Context) func(*entities.Profile, error) {
	return func(profile *entities.Profile, err error) {
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
	}
}
