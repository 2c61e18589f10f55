package repositories

import (
	"context"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
)

// PostRepository persiste posts e suas vagas
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	FindByID(ctx context.Context, id string) (*entities.Post, error)
	Update(ctx context.Context, post *entities.Post) error
	List(ctx context.Context, filters PostFilters) ([]*entities.Post, error)

	// DecrementRoleCapacity consome uma vaga; retorna ErrRoleUnavailable se não houver vaga
	DecrementRoleCapacity(ctx context.Context, postID string, role entities.Role) error
	// IncrementRoleCapacity devolve uma vaga, nunca acima da capacidade
	IncrementRoleCapacity(ctx context.Context, postID string, role entities.Role) error
}

// PostFilters contém filtros para listagem de posts
type PostFilters struct {
	AuthorID     *string
	Status       *entities.PostStatus
	ProjectType  *entities.ProjectType
	ActivityMode *entities.ActivityMode
	Role         *entities.Role
	TechStack    *entities.TechStack
	Page         int
	PageSize     int
}
