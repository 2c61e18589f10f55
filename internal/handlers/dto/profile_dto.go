package dto

import (
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/services"
)

// CreateProfileRequest cria o perfil do usuário autenticado
type CreateProfileRequest struct {
	Nickname   string   `json:"nickname" binding:"required,min=2,max=50"`
	Bio        string   `json:"bio" binding:"max=500"`
	Interests  []string `json:"interests" binding:"required,min=1,max=5,unique,dive,interest"`
	TechStacks []string `json:"tech_stacks" binding:"required,min=1,max=5,unique,dive,techstack"`
	Role       *string  `json:"role" binding:"omitempty,role"`
}

// UpdateProfileRequest altera nickname e bio
type UpdateProfileRequest struct {
	Nickname *string `json:"nickname" binding:"omitempty,min=2,max=50"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
}

// InterestRequest adiciona um interesse
type InterestRequest struct {
	Interest string `json:"interest" binding:"required,interest"`
}

// TechStackRequest adiciona uma tecnologia
type TechStackRequest struct {
	TechStack string `json:"tech_stack" binding:"required,techstack"`
}

// RoleRequest substitui a role do perfil
type RoleRequest struct {
	Role string `json:"role" binding:"required,role"`
}

// ProposalSettingsRequest altera os opt-ins de proposta
type ProposalSettingsRequest struct {
	ProjectProposalEnabled *bool `json:"project_proposal_enabled"`
	StudyProposalEnabled   *bool `json:"study_proposal_enabled"`
}

// ProfileResponse representa um perfil
type ProfileResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Nickname   string    `json:"nickname"`
	Bio        string    `json:"bio"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	Interests  []string  `json:"interests"`
	TechStacks []string  `json:"tech_stacks"`
	Role       *string   `json:"role,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProposalSettingsResponse representa os opt-ins de proposta
type ProposalSettingsResponse struct {
	ProjectProposalEnabled bool `json:"project_proposal_enabled"`
	StudyProposalEnabled   bool `json:"study_proposal_enabled"`
}

// ToCreateProfileInput converte a requisição; os valores já foram validados pelas tags de vocabulário
func (r CreateProfileRequest) ToCreateProfileInput() services.CreateProfileInput {
	input := services.CreateProfileInput{
		Nickname:   r.Nickname,
		Bio:        r.Bio,
		Interests:  toInterests(r.Interests),
		TechStacks: toTechStacks(r.TechStacks),
	}
	if r.Role != nil {
		role := entities.Role(*r.Role)
		input.Role = &role
	}
	return input
}

// ToProfileResponse converte uma entidade Profile
func ToProfileResponse(profile *entities.Profile) ProfileResponse {
	response := ProfileResponse{
		ID:         profile.ID,
		UserID:     profile.UserID,
		Nickname:   profile.Nickname,
		Bio:        profile.Bio,
		AvatarURL:  profile.AvatarURL,
		Interests:  make([]string, 0, len(profile.Interests)),
		TechStacks: make([]string, 0, len(profile.TechStacks)),
		CreatedAt:  profile.CreatedAt,
		UpdatedAt:  profile.UpdatedAt,
	}
	for _, i := range profile.Interests {
		response.Interests = append(response.Interests, string(i))
	}
	for _, t := range profile.TechStacks {
		response.TechStacks = append(response.TechStacks, string(t))
	}
	if profile.Role != nil {
		role := string(*profile.Role)
		response.Role = &role
	}
	return response
}

// ToProposalSettingsResponse converte os opt-ins de proposta
func ToProposalSettingsResponse(settings *entities.ProposalNotification) ProposalSettingsResponse {
	return ProposalSettingsResponse{
		ProjectProposalEnabled: settings.ProjectProposalEnabled,
		StudyProposalEnabled:   settings.StudyProposalEnabled,
	}
}

func toInterests(values []string) []entities.Interest {
	interests := make([]entities.Interest, 0, len(values))
	for _, v := range values {
		interests = append(interests, entities.Interest(v))
	}
	return interests
}

func toTechStacks(values []string) []entities.TechStack {
	stacks := make([]entities.TechStack, 0, len(values))
	for _, v := range values {
		stacks = append(stacks, entities.TechStack(v))
	}
	return stacks
}
