package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// ProfileRepository implementa repositories.ProfileRepository.
// Interesses, tecnologias e role ficam em tabelas próprias com unicidade por perfil.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository cria um novo ProfileRepository
func NewProfileRepository(db *gorm.DB) repositories.ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	model := r.toModel(profile)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrProfileAlreadyExists
		}
		return err
	}

	profile.ID = model.ID
	profile.CreatedAt = fromUnix(model.CreatedAt)
	profile.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*entities.Profile, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *ProfileRepository) FindByNickname(ctx context.Context, nickname string) (*entities.Profile, error) {
	return r.findOne(ctx, "nickname = ?", nickname)
}

func (r *ProfileRepository) findOne(ctx context.Context, query string, args ...any) (*entities.Profile, error) {
	var model ProfileModel

	err := conn(ctx, r.db).
		Preload("Interests", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Preload("TechStacks", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Preload("Role").
		Where(query, args...).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

// Update grava apenas os campos escalares; atributos têm operações próprias
func (r *ProfileRepository) Update(ctx context.Context, profile *entities.Profile) error {
	err := conn(ctx, r.db).
		Model(&ProfileModel{Base: Base{ID: profile.ID}}).
		Select("nickname", "bio", "avatar_url", "updated_at").
		Updates(&ProfileModel{
			Nickname:  profile.Nickname,
			Bio:       profile.Bio,
			AvatarURL: profile.AvatarURL,
		}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrNicknameTaken
	}
	return err
}

func (r *ProfileRepository) AddInterest(ctx context.Context, profileID string, interest entities.Interest) error {
	err := conn(ctx, r.db).Create(&ProfileInterestModel{ProfileID: profileID, Interest: string(interest)}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrDuplicateAttribute
	}
	return err
}

func (r *ProfileRepository) RemoveInterest(ctx context.Context, profileID string, interest entities.Interest) error {
	return conn(ctx, r.db).
		Where("profile_id = ? AND interest = ?", profileID, string(interest)).
		Delete(&ProfileInterestModel{}).Error
}

func (r *ProfileRepository) AddTechStack(ctx context.Context, profileID string, stack entities.TechStack) error {
	err := conn(ctx, r.db).Create(&ProfileTechStackModel{ProfileID: profileID, TechStack: string(stack)}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrDuplicateAttribute
	}
	return err
}

func (r *ProfileRepository) RemoveTechStack(ctx context.Context, profileID string, stack entities.TechStack) error {
	return conn(ctx, r.db).
		Where("profile_id = ? AND tech_stack = ?", profileID, string(stack)).
		Delete(&ProfileTechStackModel{}).Error
}

func (r *ProfileRepository) ReplaceRole(ctx context.Context, profileID string, role entities.Role) error {
	return conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(&ProfileRoleModel{ProfileID: profileID, Role: string(role)}).Error
}

func (r *ProfileRepository) GetProposalSettings(ctx context.Context, profileID string) (*entities.ProposalNotification, error) {
	var model ProposalNotificationModel

	if err := conn(ctx, r.db).Where("profile_id = ?", profileID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entities.ProposalNotification{
		ProfileID:              model.ProfileID,
		ProjectProposalEnabled: model.ProjectProposalEnabled,
		StudyProposalEnabled:   model.StudyProposalEnabled,
	}, nil
}

func (r *ProfileRepository) SaveProposalSettings(ctx context.Context, settings *entities.ProposalNotification) error {
	return conn(ctx, r.db).Save(&ProposalNotificationModel{
		ProfileID:              settings.ProfileID,
		ProjectProposalEnabled: settings.ProjectProposalEnabled,
		StudyProposalEnabled:   settings.StudyProposalEnabled,
	}).Error
}

// Conversores
func (r *ProfileRepository) toModel(profile *entities.Profile) *ProfileModel {
	model := &ProfileModel{
		Base:      Base{ID: profile.ID},
		UserID:    profile.UserID,
		Nickname:  profile.Nickname,
		Bio:       profile.Bio,
		AvatarURL: profile.AvatarURL,
		CreatedAt: toUnix(profile.CreatedAt),
		UpdatedAt: toUnix(profile.UpdatedAt),
	}

	for _, interest := range profile.Interests {
		model.Interests = append(model.Interests, ProfileInterestModel{Interest: string(interest)})
	}
	for _, stack := range profile.TechStacks {
		model.TechStacks = append(model.TechStacks, ProfileTechStackModel{TechStack: string(stack)})
	}
	if profile.Role != nil {
		model.Role = &ProfileRoleModel{Role: string(*profile.Role)}
	}

	return model
}

func (r *ProfileRepository) toEntity(model *ProfileModel) *entities.Profile {
	profile := &entities.Profile{
		ID:         model.ID,
		UserID:     model.UserID,
		Nickname:   model.Nickname,
		Bio:        model.Bio,
		AvatarURL:  model.AvatarURL,
		Interests:  make([]entities.Interest, 0, len(model.Interests)),
		TechStacks: make([]entities.TechStack, 0, len(model.TechStacks)),
		CreatedAt:  fromUnix(model.CreatedAt),
		UpdatedAt:  fromUnix(model.UpdatedAt),
	}

	for _, i := range model.Interests {
		profile.Interests = append(profile.Interests, entities.Interest(i.Interest))
	}
	for _, s := range model.TechStacks {
		profile.TechStacks = append(profile.TechStacks, entities.TechStack(s.TechStack))
	}
	if model.Role != nil {
		role := entities.Role(model.Role.Role)
		profile.Role = &role
	}

	return profile
}
