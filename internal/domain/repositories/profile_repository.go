package repositories

import (
	"context"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
)

// ProfileRepository persiste perfis e seus atributos (interesses, tecnologias, role)
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) error
	FindByID(ctx context.Context, id string) (*entities.Profile, error)
	FindByUserID(ctx context.Context, userID string) (*entities.Profile, error)
	FindByNickname(ctx context.Context, nickname string) (*entities.Profile, error)
	Update(ctx context.Context, profile *entities.Profile) error

	AddInterest(ctx context.Context, profileID string, interest entities.Interest) error
	RemoveInterest(ctx context.Context, profileID string, interest entities.Interest) error
	AddTechStack(ctx context.Context, profileID string, stack entities.TechStack) error
	RemoveTechStack(ctx context.Context, profileID string, stack entities.TechStack) error
	// ReplaceRole grava a role do perfil em uma única linha (upsert)
	ReplaceRole(ctx context.Context, profileID string, role entities.Role) error

	GetProposalSettings(ctx context.Context, profileID string) (*entities.ProposalNotification, error)
	SaveProposalSettings(ctx context.Context, settings *entities.ProposalNotification) error
}
