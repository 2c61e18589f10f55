package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
	"github.com/rafabene/crewup-backend/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrEmailAlreadyExists
		}
		return err
	}

	user.ID = model.ID
	user.CreatedAt = fromUnix(model.CreatedAt)
	user.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*entities.User, error) {
	var model UserModel

	if err := conn(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)
	return conn(ctx, r.db).Save(model).Error
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	var models []*UserModel

	query := conn(ctx, r.db).Model(&UserModel{})

	// Aplicar filtros
	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}

	query = paginate(query.Order("created_at DESC"), filters.Page, filters.PageSize)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

func (r *UserRepository) FindByOAuth(ctx context.Context, provider entities.OAuthProvider, subject string) (*entities.User, error) {
	var account OAuthAccountModel

	err := conn(ctx, r.db).
		Where("provider = ? AND subject = ?", string(provider), subject).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.FindByID(ctx, account.UserID)
}

func (r *UserRepository) LinkOAuth(ctx context.Context, account *entities.OAuthAccount) error {
	model := &OAuthAccountModel{
		Base:     Base{ID: account.ID},
		UserID:   account.UserID,
		Provider: string(account.Provider),
		Subject:  account.Subject,
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	account.ID = model.ID
	account.CreatedAt = fromUnix(model.CreatedAt)
	return nil
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		Base:         Base{ID: user.ID},
		Email:        user.Email.String(),
		Name:         user.Name,
		PasswordHash: optionalString(user.PasswordHash),
		Status:       string(user.Status),
		CreatedAt:    toUnix(user.CreatedAt),
		UpdatedAt:    toUnix(user.UpdatedAt),
		WithdrawnAt:  toUnixPtr(user.WithdrawnAt),
	}
}

func (r *UserRepository) toEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:           model.ID,
		Email:        email,
		Name:         model.Name,
		PasswordHash: derefString(model.PasswordHash),
		Status:       entities.UserStatus(model.Status),
		CreatedAt:    fromUnix(model.CreatedAt),
		UpdatedAt:    fromUnix(model.UpdatedAt),
		WithdrawnAt:  fromUnixPtr(model.WithdrawnAt),
	}, nil
}

func (r *UserRepository) toEntities(models []*UserModel) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(models))

	for _, model := range models {
		entity, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, entity)
	}

	return users, nil
}
