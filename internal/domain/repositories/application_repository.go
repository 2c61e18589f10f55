package repositories

import (
	"context"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
)

// ApplicationRepository persiste candidaturas
type ApplicationRepository interface {
	Create(ctx context.Context, application *entities.Application) error
	FindByID(ctx context.Context, id string) (*entities.Application, error)
	// ExistsActive verifica se há candidatura não retirada para (usuário, post, role)
	ExistsActive(ctx context.Context, applicantID, postID string, role entities.Role) (bool, error)
	// TransitionStatus aplica from -> to somente se o estado atual ainda for from
	TransitionStatus(ctx context.Context, application *entities.Application, from entities.ApplicationStatus) (bool, error)
	ListByPost(ctx context.Context, postID string, status *entities.ApplicationStatus) ([]*entities.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]*entities.Application, error)
}
