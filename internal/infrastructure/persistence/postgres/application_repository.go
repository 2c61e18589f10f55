package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// ApplicationRepository implementa repositories.ApplicationRepository
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository cria um novo ApplicationRepository
func NewApplicationRepository(db *gorm.DB) repositories.ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create insere a candidatura; o índice parcial rejeita uma segunda candidatura ativa
func (r *ApplicationRepository) Create(ctx context.Context, application *entities.Application) error {
	model := r.toModel(application)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrDuplicateApplication
		}
		return err
	}

	application.ID = model.ID
	application.CreatedAt = fromUnix(model.CreatedAt)
	application.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*entities.Application, error) {
	var model ApplicationModel

	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *ApplicationRepository) ExistsActive(ctx context.Context, applicantID, postID string, role entities.Role) (bool, error) {
	var count int64

	err := conn(ctx, r.db).Model(&ApplicationModel{}).
		Where("applicant_id = ? AND post_id = ? AND role = ? AND status <> ?",
			applicantID, postID, string(role), string(entities.ApplicationStatusWithdrawn)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// TransitionStatus grava o novo estado somente se o estado persistido ainda for from.
// Retorna false quando outra transação já moveu a candidatura.
func (r *ApplicationRepository) TransitionStatus(ctx context.Context, application *entities.Application, from entities.ApplicationStatus) (bool, error) {
	res := conn(ctx, r.db).Model(&ApplicationModel{}).
		Where("id = ? AND status = ?", application.ID, string(from)).
		Updates(map[string]any{
			"status":     string(application.Status),
			"decided_at": toUnixPtr(application.DecidedAt),
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, domainerrors.ErrDuplicateApplication
		}
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

func (r *ApplicationRepository) ListByPost(ctx context.Context, postID string, status *entities.ApplicationStatus) ([]*entities.Application, error) {
	query := conn(ctx, r.db).Where("post_id = ?", postID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}
	return r.list(query)
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]*entities.Application, error) {
	return r.list(conn(ctx, r.db).Where("applicant_id = ?", applicantID))
}

func (r *ApplicationRepository) list(query *gorm.DB) ([]*entities.Application, error) {
	var models []*ApplicationModel

	if err := query.Order("created_at DESC, id").Find(&models).Error; err != nil {
		return nil, err
	}

	applications := make([]*entities.Application, 0, len(models))
	for _, model := range models {
		applications = append(applications, r.toEntity(model))
	}
	return applications, nil
}

// Conversores
func (r *ApplicationRepository) toModel(application *entities.Application) *ApplicationModel {
	return &ApplicationModel{
		Base:        Base{ID: application.ID},
		PostID:      application.PostID,
		Role:        string(application.Role),
		ApplicantID: application.ApplicantID,
		Message:     application.Message,
		Status:      string(application.Status),
		CreatedAt:   toUnix(application.CreatedAt),
		UpdatedAt:   toUnix(application.UpdatedAt),
		DecidedAt:   toUnixPtr(application.DecidedAt),
	}
}

func (r *ApplicationRepository) toEntity(model *ApplicationModel) *entities.Application {
	return &entities.Application{
		ID:          model.ID,
		PostID:      model.PostID,
		Role:        entities.Role(model.Role),
		ApplicantID: model.ApplicantID,
		Message:     model.Message,
		Status:      entities.ApplicationStatus(model.Status),
		CreatedAt:   fromUnix(model.CreatedAt),
		UpdatedAt:   fromUnix(model.UpdatedAt),
		DecidedAt:   fromUnixPtr(model.DecidedAt),
	}
}
