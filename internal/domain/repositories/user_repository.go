package repositories

import (
	"context"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários.
// Usuários encerrados também são retornados: o status é verificado na camada de serviço.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	List(ctx context.Context, filters UserFilters) ([]*entities.User, error)
	FindByOAuth(ctx context.Context, provider entities.OAuthProvider, subject string) (*entities.User, error)
	LinkOAuth(ctx context.Context, account *entities.OAuthAccount) error
}

// UserFilters contém filtros para listagem de usuários
type UserFilters struct {
	Status   *entities.UserStatus
	Page     int // Página (começa em 1)
	PageSize int // Itens por página (default: 20, max: 100)
}
