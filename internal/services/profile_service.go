package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// ProfileService gerencia perfis e seus conjuntos de atributos
type ProfileService struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	storage     ports.ImageStorage
	uow         ports.UnitOfWork
	sanitizer   ports.Sanitizer
	clock       ports.Clock
	logger      ports.Logger
}

// NewProfileService cria um novo ProfileService
func NewProfileService(
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	storage ports.ImageStorage,
	uow ports.UnitOfWork,
	sanitizer ports.Sanitizer,
	clock ports.Clock,
	logger ports.Logger,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		storage:     storage,
		uow:         uow,
		sanitizer:   sanitizer,
		clock:       clock,
		logger:      logger,
	}
}

// CreateProfileInput representa os dados para criar um perfil
type CreateProfileInput struct {
	Nickname   string
	Bio        string
	Interests  []entities.Interest
	TechStacks []entities.TechStack
	Role       *entities.Role
}

// UpdateProfileInput contém os campos escalares editáveis; nil mantém o valor atual
type UpdateProfileInput struct {
	Nickname *string
	Bio      *string
}

// Create cria o perfil do usuário (um por usuário, nickname único)
func (s *ProfileService) Create(ctx context.Context, userID string, input CreateProfileInput) (*entities.Profile, error) {
	if err := s.requireActiveUser(ctx, userID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	profile := &entities.Profile{
		UserID:    userID,
		Nickname:  strings.TrimSpace(input.Nickname),
		Bio:       s.sanitizer.PlainText(input.Bio),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Os limites de cardinalidade e unicidade valem também na criação
	for _, interest := range input.Interests {
		if err := profile.AddInterest(interest); err != nil {
			return nil, err
		}
	}
	for _, stack := range input.TechStacks {
		if err := profile.AddTechStack(stack); err != nil {
			return nil, err
		}
	}
	if input.Role != nil {
		if err := profile.UpdateRole(*input.Role); err != nil {
			return nil, err
		}
	}

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.profileRepo.FindByUserID(txCtx, userID)
		if err != nil {
			return infra(err)
		}
		if existing != nil {
			return domainerrors.ErrProfileAlreadyExists
		}

		if err := s.ensureNicknameAvailable(txCtx, profile.Nickname, ""); err != nil {
			return err
		}

		return infra(s.profileRepo.Create(txCtx, profile))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile created", "profile_id", profile.ID, "user_id", userID)
	return profile, nil
}

// Get busca um perfil por ID; perfis de usuários encerrados não são visíveis
func (s *ProfileService) Get(ctx context.Context, id string) (*entities.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, infra(err)
	}
	return s.visible(ctx, profile)
}

// GetByUser busca o perfil de um usuário ativo
func (s *ProfileService) GetByUser(ctx context.Context, userID string) (*entities.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, infra(err)
	}
	return s.visible(ctx, profile)
}

func (s *ProfileService) visible(ctx context.Context, profile *entities.Profile) (*entities.Profile, error) {
	if profile == nil {
		return nil, domainerrors.ErrProfileNotFound
	}
	if err := s.requireActiveUser(ctx, profile.UserID); err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Update altera nickname e bio do perfil do usuário
func (s *ProfileService) Update(ctx context.Context, userID string, input UpdateProfileInput) (*entities.Profile, error) {
	var profile *entities.Profile

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		profile, err = s.GetByUser(txCtx, userID)
		if err != nil {
			return err
		}

		if input.Nickname != nil {
			nickname := strings.TrimSpace(*input.Nickname)
			if nickname != profile.Nickname {
				if err := s.ensureNicknameAvailable(txCtx, nickname, profile.ID); err != nil {
					return err
				}
				profile.Nickname = nickname
			}
		}
		if input.Bio != nil {
			profile.Bio = s.sanitizer.PlainText(*input.Bio)
		}
		profile.UpdatedAt = s.clock.Now()

		return infra(s.profileRepo.Update(txCtx, profile))
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// AddInterest adiciona um interesse ao perfil do usuário
func (s *ProfileService) AddInterest(ctx context.Context, userID string, interest entities.Interest) (*entities.Profile, error) {
	return s.mutate(ctx, userID, func(txCtx context.Context, profile *entities.Profile) error {
		if err := profile.AddInterest(interest); err != nil {
			return err
		}
		return infra(s.profileRepo.AddInterest(txCtx, profile.ID, interest))
	})
}

// RemoveInterest remove um interesse; remover um valor ausente não altera nada
func (s *ProfileService) RemoveInterest(ctx context.Context, userID string, interest entities.Interest) (*entities.Profile, error) {
	return s.mutate(ctx, userID, func(txCtx context.Context, profile *entities.Profile) error {
		removed, err := profile.RemoveInterest(interest)
		if err != nil || !removed {
			return err
		}
		return infra(s.profileRepo.RemoveInterest(txCtx, profile.ID, interest))
	})
}

// AddTechStack adiciona uma tecnologia ao perfil do usuário
func (s *ProfileService) AddTechStack(ctx context.Context, userID string, stack entities.TechStack) (*entities.Profile, error) {
	return s.mutate(ctx, userID, func(txCtx context.Context, profile *entities.Profile) error {
		if err := profile.AddTechStack(stack); err != nil {
			return err
		}
		return infra(s.profileRepo.AddTechStack(txCtx, profile.ID, stack))
	})
}

// RemoveTechStack remove uma tecnologia
func (s *ProfileService) RemoveTechStack(ctx context.Context, userID string, stack entities.TechStack) (*entities.Profile, error) {
	return s.mutate(ctx, userID, func(txCtx context.Context, profile *entities.Profile) error {
		removed, err := profile.RemoveTechStack(stack)
		if err != nil || !removed {
			return err
		}
		return infra(s.profileRepo.RemoveTechStack(txCtx, profile.ID, stack))
	})
}

// UpdateRole substitui a role do perfil (sempre uma única linha)
func (s *ProfileService) UpdateRole(ctx context.Context, userID string, role entities.Role) (*entities.Profile, error) {
	return s.mutate(ctx, userID, func(txCtx context.Context, profile *entities.Profile) error {
		if err := profile.UpdateRole(role); err != nil {
			return err
		}
		return infra(s.profileRepo.ReplaceRole(txCtx, profile.ID, role))
	})
}

// UploadAvatar envia a imagem ao storage e grava a URL pública no perfil
func (s *ProfileService) UploadAvatar(ctx context.Context, userID, filename, contentType string, body io.Reader) (*entities.Profile, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, domainerrors.ErrInvalidAvatar
	}

	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s%s", profile.ID, uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := s.storage.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, infra(err)
	}

	profile.AvatarURL = &url
	profile.UpdatedAt = s.clock.Now()
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, infra(err)
	}

	s.logger.Info("avatar uploaded", "profile_id", profile.ID, "key", key)
	return profile, nil
}

// GetProposalSettings retorna os opt-ins de proposta; sem registro valem os padrões
func (s *ProfileService) GetProposalSettings(ctx context.Context, userID string) (*entities.ProposalNotification, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.proposalSettings(ctx, profile.ID)
}

// UpdateProposalSettingsInput contém os toggles; nil mantém o valor atual
type UpdateProposalSettingsInput struct {
	ProjectProposalEnabled *bool
	StudyProposalEnabled   *bool
}

// UpdateProposalSettings altera os opt-ins de proposta do usuário
func (s *ProfileService) UpdateProposalSettings(ctx context.Context, userID string, input UpdateProposalSettingsInput) (*entities.ProposalNotification, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings, err := s.proposalSettings(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if input.ProjectProposalEnabled != nil {
		settings.ProjectProposalEnabled = *input.ProjectProposalEnabled
	}
	if input.StudyProposalEnabled != nil {
		settings.StudyProposalEnabled = *input.StudyProposalEnabled
	}

	if err := s.profileRepo.SaveProposalSettings(ctx, settings); err != nil {
		return nil, infra(err)
	}
	return settings, nil
}

func (s *ProfileService) proposalSettings(ctx context.Context, profileID string) (*entities.ProposalNotification, error) {
	settings, err := s.profileRepo.GetProposalSettings(ctx, profileID)
	if err != nil {
		return nil, infra(err)
	}
	if settings == nil {
		return entities.DefaultProposalNotification(profileID), nil
	}
	return settings, nil
}

// mutate carrega o perfil do usuário e aplica fn na mesma transação
func (s *ProfileService) mutate(ctx context.Context, userID string, fn func(context.Context, *entities.Profile) error) (*entities.Profile, error) {
	var profile *entities.Profile

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		profile, err = s.GetByUser(txCtx, userID)
		if err != nil {
			return err
		}
		return fn(txCtx, profile)
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *ProfileService) ensureNicknameAvailable(ctx context.Context, nickname, selfID string) error {
	if nickname == "" {
		return domainerrors.ErrInvalidVocabulary
	}
	owner, err := s.profileRepo.FindByNickname(ctx, nickname)
	if err != nil {
		return infra(err)
	}
	if owner != nil && owner.ID != selfID {
		return domainerrors.ErrNicknameTaken
	}
	return nil
}

func (s *ProfileService) requireActiveUser(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return infra(err)
	}
	if user == nil || !user.IsActive() {
		return domainerrors.ErrUserNotFound
	}
	return nil
}
