package dto

import (
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/services"
)

// CreateUserRequest representa a requisição para criar um usuário
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest representa a requisição de login local
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ListUsersQuery filtra a listagem de usuários
type ListUsersQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE WITHDRAWN"`
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse é devolvida no registro, login e callback OAuth
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email.String(),
		Name:      user.Name,
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

// ToAuthResponse converte o resultado de autenticação
func ToAuthResponse(result *services.AuthResult) AuthResponse {
	return AuthResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   result.ExpiresAt,
		User:        ToUserResponse(result.User),
	}
}
