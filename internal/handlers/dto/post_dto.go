package dto

import (
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
	"github.com/rafabene/crewup-backend/internal/services"
)

// RoleCapacityRequest é uma vaga de um post
type RoleCapacityRequest struct {
	Role     string `json:"role" binding:"required,role"`
	Capacity int    `json:"capacity" binding:"required,min=1,max=50"`
}

// CreatePostRequest cria um post em DRAFT (padrão) ou OPEN
type CreatePostRequest struct {
	ProjectType  string                `json:"project_type" binding:"required,projecttype"`
	Status       string                `json:"status" binding:"omitempty,oneof=DRAFT OPEN"`
	ActivityMode string                `json:"activity_mode" binding:"required,activitymode"`
	Duration     string                `json:"duration" binding:"required,duration"`
	DeadlineAt   time.Time             `json:"deadline_at" binding:"required"`
	Title        string                `json:"title" binding:"required,min=2,max=200"`
	Content      string                `json:"content" binding:"max=20000"`
	Interests    []string              `json:"interests" binding:"max=5,unique,dive,interest"`
	TechStacks   []string              `json:"tech_stacks" binding:"max=10,unique,dive,techstack"`
	Roles        []RoleCapacityRequest `json:"roles" binding:"required,min=1,unique=Role,dive"`
}

// UpdatePostRequest altera campos editáveis; ausentes mantêm o valor atual
type UpdatePostRequest struct {
	ActivityMode *string               `json:"activity_mode" binding:"omitempty,activitymode"`
	Duration     *string               `json:"duration" binding:"omitempty,duration"`
	DeadlineAt   *time.Time            `json:"deadline_at"`
	Title        *string               `json:"title" binding:"omitempty,min=2,max=200"`
	Content      *string               `json:"content" binding:"omitempty,max=20000"`
	Interests    []string              `json:"interests" binding:"omitempty,max=5,unique,dive,interest"`
	TechStacks   []string              `json:"tech_stacks" binding:"omitempty,max=10,unique,dive,techstack"`
	Roles        []RoleCapacityRequest `json:"roles" binding:"omitempty,min=1,unique=Role,dive"`
}

// ListPostsQuery filtra a listagem de posts
type ListPostsQuery struct {
	PageQuery
	AuthorID     string `form:"author_id" binding:"omitempty,uuid"`
	Status       string `form:"status" binding:"omitempty,poststatus"`
	ProjectType  string `form:"project_type" binding:"omitempty,projecttype"`
	ActivityMode string `form:"activity_mode" binding:"omitempty,activitymode"`
	Role         string `form:"role" binding:"omitempty,role"`
	TechStack    string `form:"tech_stack" binding:"omitempty,techstack"`
}

// PostRoleResponse é uma vaga com a capacidade restante
type PostRoleResponse struct {
	Role        string `json:"role"`
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	Capacity    int    `json:"capacity"`
	Remaining   int    `json:"remaining"`
}

// PostResponse representa um post
type PostResponse struct {
	ID           string             `json:"id"`
	AuthorID     string             `json:"author_id"`
	ProjectType  string             `json:"project_type"`
	Status       string             `json:"status"`
	ActivityMode string             `json:"activity_mode"`
	Duration     string             `json:"duration"`
	DeadlineAt   time.Time          `json:"deadline_at"`
	Title        string             `json:"title"`
	Content      string             `json:"content"`
	Interests    []string           `json:"interests"`
	TechStacks   []string           `json:"tech_stacks"`
	Roles        []PostRoleResponse `json:"roles"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ToPostInput converte a requisição de criação
func (r CreatePostRequest) ToPostInput() services.PostInput {
	return services.PostInput{
		ProjectType:  entities.ProjectType(r.ProjectType),
		Status:       entities.PostStatus(r.Status),
		ActivityMode: entities.ActivityMode(r.ActivityMode),
		Duration:     entities.Duration(r.Duration),
		DeadlineAt:   r.DeadlineAt,
		Title:        r.Title,
		Content:      r.Content,
		Interests:    toInterests(r.Interests),
		TechStacks:   toTechStacks(r.TechStacks),
		Roles:        toCapacities(r.Roles),
	}
}

// ToUpdatePostInput converte a requisição de atualização
func (r UpdatePostRequest) ToUpdatePostInput() services.UpdatePostInput {
	input := services.UpdatePostInput{
		DeadlineAt: r.DeadlineAt,
		Title:      r.Title,
		Content:    r.Content,
	}
	if r.ActivityMode != nil {
		mode := entities.ActivityMode(*r.ActivityMode)
		input.ActivityMode = &mode
	}
	if r.Duration != nil {
		duration := entities.Duration(*r.Duration)
		input.Duration = &duration
	}
	if r.Interests != nil {
		input.Interests = toInterests(r.Interests)
	}
	if r.TechStacks != nil {
		input.TechStacks = toTechStacks(r.TechStacks)
	}
	if r.Roles != nil {
		input.Roles = toCapacities(r.Roles)
	}
	return input
}

// ToPostFilters converte os filtros da query string
func (q ListPostsQuery) ToPostFilters() repositories.PostFilters {
	filters := repositories.PostFilters{Page: q.Page, PageSize: q.PageSize}
	if q.AuthorID != "" {
		filters.AuthorID = &q.AuthorID
	}
	if q.Status != "" {
		status := entities.PostStatus(q.Status)
		filters.Status = &status
	}
	if q.ProjectType != "" {
		projectType := entities.ProjectType(q.ProjectType)
		filters.ProjectType = &projectType
	}
	if q.ActivityMode != "" {
		mode := entities.ActivityMode(q.ActivityMode)
		filters.ActivityMode = &mode
	}
	if q.Role != "" {
		role := entities.Role(q.Role)
		filters.Role = &role
	}
	if q.TechStack != "" {
		stack := entities.TechStack(q.TechStack)
		filters.TechStack = &stack
	}
	return filters
}

// ToPostResponse converte uma entidade Post
func ToPostResponse(post *entities.Post) PostResponse {
	response := PostResponse{
		ID:           post.ID,
		AuthorID:     post.AuthorID,
		ProjectType:  string(post.ProjectType),
		Status:       string(post.Status),
		ActivityMode: string(post.ActivityMode),
		Duration:     string(post.Duration),
		DeadlineAt:   post.DeadlineAt,
		Title:        post.Title,
		Content:      post.Content,
		Interests:    make([]string, 0, len(post.Interests)),
		TechStacks:   make([]string, 0, len(post.TechStacks)),
		Roles:        make([]PostRoleResponse, 0, len(post.Roles)),
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
	for _, i := range post.Interests {
		response.Interests = append(response.Interests, string(i))
	}
	for _, t := range post.TechStacks {
		response.TechStacks = append(response.TechStacks, string(t))
	}
	for _, r := range post.Roles {
		response.Roles = append(response.Roles, PostRoleResponse{
			Role:        string(r.Role),
			Code:        r.Role.Code(),
			DisplayName: r.Role.DisplayName(),
			Capacity:    r.Capacity,
			Remaining:   r.Remaining,
		})
	}
	return response
}

// ToPostResponses converte uma lista de posts
func ToPostResponses(posts []*entities.Post) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = ToPostResponse(post)
	}
	return responses
}

func toCapacities(roles []RoleCapacityRequest) map[entities.Role]int {
	capacities := make(map[entities.Role]int, len(roles))
	for _, r := range roles {
		capacities[entities.Role(r.Role)] = r.Capacity
	}
	return capacities
}
