package dto

import (
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
)

// SubmitApplicationRequest candidata o usuário a uma vaga
type SubmitApplicationRequest struct {
	Role    string `json:"role" binding:"required"`
	Message string `json:"message" binding:"max=1000"`
}

// DecisionRequest aceita ou rejeita uma candidatura
type DecisionRequest struct {
	Decision string `json:"decision" binding:"required,decision"`
}

// CanApplyQuery identifica a vaga consultada
type CanApplyQuery struct {
	Role string `form:"role" binding:"required"`
}

// ListApplicationsQuery filtra candidaturas de um post
type ListApplicationsQuery struct {
	Status string `form:"status" binding:"omitempty,appstatus"`
}

// CanApplyResponse é o resultado da verificação de elegibilidade
type CanApplyResponse struct {
	CanApply bool   `json:"can_apply"`
	Reason   string `json:"reason,omitempty"`
}

// ApplicationResponse representa uma candidatura
type ApplicationResponse struct {
	ID          string     `json:"id"`
	PostID      string     `json:"post_id"`
	Role        string     `json:"role"`
	ApplicantID string     `json:"applicant_id"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}

// ToCanApplyResponse converte o resultado de elegibilidade
func ToCanApplyResponse(result entities.CanApplyResult) CanApplyResponse {
	return CanApplyResponse{CanApply: result.CanApply, Reason: string(result.Reason)}
}

// ToApplicationResponse converte uma entidade Application
func ToApplicationResponse(application *entities.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          application.ID,
		PostID:      application.PostID,
		Role:        string(application.Role),
		ApplicantID: application.ApplicantID,
		Message:     application.Message,
		Status:      string(application.Status),
		CreatedAt:   application.CreatedAt,
		UpdatedAt:   application.UpdatedAt,
		DecidedAt:   application.DecidedAt,
	}
}

// ToApplicationResponses converte uma lista de candidaturas
func ToApplicationResponses(applications []*entities.Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, len(applications))
	for i, application := range applications {
		responses[i] = ToApplicationResponse(application)
	}
	return responses
}
