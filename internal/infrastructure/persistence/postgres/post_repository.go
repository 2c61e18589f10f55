package postgres

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// PostRepository implementa repositories.PostRepository
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository cria um novo PostRepository
func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	model := r.toModel(post)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return err
	}

	post.ID = model.ID
	post.CreatedAt = fromUnix(model.CreatedAt)
	post.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*entities.Post, error) {
	var model PostModel

	if err := conn(ctx, r.db).Preload("Roles").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

// Update grava o post com controle otimista de versão e substitui as vagas.
// Deve rodar dentro de uma transação do UnitOfWork.
func (r *PostRepository) Update(ctx context.Context, post *entities.Post) error {
	db := conn(ctx, r.db)
	model := r.toModel(post)

	res := db.Model(&PostModel{}).
		Where("id = ? AND version = ?", post.ID, post.Version).
		Updates(map[string]any{
			"status":        model.Status,
			"activity_mode": model.ActivityMode,
			"duration":      model.Duration,
			"deadline_at":   model.DeadlineAt,
			"title":         model.Title,
			"content":       model.Content,
			"interests":     model.Interests,
			"tech_stacks":   model.TechStacks,
			"version":       gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrConcurrentUpdate
	}

	roles := make([]string, 0, len(post.Roles))
	for _, role := range model.Roles {
		roles = append(roles, role.Role)

		// remaining é recalculado no banco para não sobrescrever aceites concorrentes
		update := db.Model(&PostRoleModel{}).
			Where("post_id = ? AND role = ? AND capacity - remaining <= ?", post.ID, role.Role, role.Capacity).
			Updates(map[string]any{
				"capacity":  role.Capacity,
				"remaining": gorm.Expr("remaining + ? - capacity", role.Capacity),
				"version":   gorm.Expr("version + 1"),
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected > 0 {
			continue
		}

		var existing int64
		if err := db.Model(&PostRoleModel{}).Where("post_id = ? AND role = ?", post.ID, role.Role).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return domainerrors.ErrCapacityBelowAccepted
		}

		role.PostID = post.ID
		if err := db.Create(&role).Error; err != nil {
			return err
		}
	}

	var occupied int64
	err := db.Model(&PostRoleModel{}).
		Where("post_id = ? AND role NOT IN ? AND remaining < capacity", post.ID, roles).
		Count(&occupied).Error
	if err != nil {
		return err
	}
	if occupied > 0 {
		return domainerrors.ErrCapacityBelowAccepted
	}
	if err := db.Where("post_id = ? AND role NOT IN ?", post.ID, roles).Delete(&PostRoleModel{}).Error; err != nil {
		return err
	}

	post.Version++
	post.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *PostRepository) List(ctx context.Context, filters repositories.PostFilters) ([]*entities.Post, error) {
	var models []*PostModel

	query := conn(ctx, r.db).Model(&PostModel{}).Preload("Roles")

	// Aplicar filtros
	if filters.AuthorID != nil {
		query = query.Where("author_id = ?", *filters.AuthorID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}
	if filters.ProjectType != nil {
		query = query.Where("project_type = ?", string(*filters.ProjectType))
	}
	if filters.ActivityMode != nil {
		query = query.Where("activity_mode = ?", string(*filters.ActivityMode))
	}
	if filters.Role != nil {
		query = query.Where("EXISTS (SELECT 1 FROM post_roles pr WHERE pr.post_id = posts.id AND pr.role = ?)", string(*filters.Role))
	}
	if filters.TechStack != nil {
		if query.Dialector.Name() == "postgres" {
			query = query.Where("? = ANY(tech_stacks)", string(*filters.TechStack))
		} else {
			// pq.StringArray grava cada elemento entre aspas: {"GO","REDIS"}
			query = query.Where("tech_stacks LIKE ? ESCAPE '\\'", "%\""+escapeLike(string(*filters.TechStack))+"\"%")
		}
	}

	query = paginate(query.Order("created_at DESC"), filters.Page, filters.PageSize)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	posts := make([]*entities.Post, 0, len(models))
	for _, model := range models {
		posts = append(posts, r.toEntity(model))
	}
	return posts, nil
}

// DecrementRoleCapacity consome uma vaga com UPDATE condicional.
// Duas transações concorrentes nunca levam remaining abaixo de zero.
func (r *PostRepository) DecrementRoleCapacity(ctx context.Context, postID string, role entities.Role) error {
	res := conn(ctx, r.db).Model(&PostRoleModel{}).
		Where("post_id = ? AND role = ? AND remaining > 0", postID, string(role)).
		Updates(map[string]any{
			"remaining": gorm.Expr("remaining - 1"),
			"version":   gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrRoleUnavailable
	}
	return nil
}

func (r *PostRepository) IncrementRoleCapacity(ctx context.Context, postID string, role entities.Role) error {
	return conn(ctx, r.db).Model(&PostRoleModel{}).
		Where("post_id = ? AND role = ? AND remaining < capacity", postID, string(role)).
		Updates(map[string]any{
			"remaining": gorm.Expr("remaining + 1"),
			"version":   gorm.Expr("version + 1"),
		}).Error
}

// Conversores
func (r *PostRepository) toModel(post *entities.Post) *PostModel {
	model := &PostModel{
		Base:         Base{ID: post.ID},
		AuthorID:     post.AuthorID,
		ProjectType:  string(post.ProjectType),
		Status:       string(post.Status),
		ActivityMode: string(post.ActivityMode),
		Duration:     string(post.Duration),
		DeadlineAt:   post.DeadlineAt.Unix(),
		Title:        post.Title,
		Content:      post.Content,
		Interests:    make([]string, 0, len(post.Interests)),
		TechStacks:   make(StringArray, 0, len(post.TechStacks)),
		Version:      post.Version,
		CreatedAt:    toUnix(post.CreatedAt),
		UpdatedAt:    toUnix(post.UpdatedAt),
	}

	for _, i := range post.Interests {
		model.Interests = append(model.Interests, string(i))
	}
	for _, t := range post.TechStacks {
		model.TechStacks = append(model.TechStacks, string(t))
	}
	for _, role := range post.Roles {
		model.Roles = append(model.Roles, PostRoleModel{
			Role:      string(role.Role),
			Capacity:  role.Capacity,
			Remaining: role.Remaining,
		})
	}

	return model
}

func (r *PostRepository) toEntity(model *PostModel) *entities.Post {
	post := &entities.Post{
		ID:           model.ID,
		AuthorID:     model.AuthorID,
		ProjectType:  entities.ProjectType(model.ProjectType),
		Status:       entities.PostStatus(model.Status),
		ActivityMode: entities.ActivityMode(model.ActivityMode),
		Duration:     entities.Duration(model.Duration),
		DeadlineAt:   fromUnix(model.DeadlineAt),
		Title:        model.Title,
		Content:      model.Content,
		Interests:    make([]entities.Interest, 0, len(model.Interests)),
		TechStacks:   make([]entities.TechStack, 0, len(model.TechStacks)),
		Roles:        make([]entities.PostRole, 0, len(model.Roles)),
		Version:      model.Version,
		CreatedAt:    fromUnix(model.CreatedAt),
		UpdatedAt:    fromUnix(model.UpdatedAt),
	}

	for _, i := range model.Interests {
		post.Interests = append(post.Interests, entities.Interest(i))
	}
	for _, t := range model.TechStacks {
		post.TechStacks = append(post.TechStacks, entities.TechStack(t))
	}
	for _, role := range model.Roles {
		post.Roles = append(post.Roles, entities.PostRole{
			Role:      entities.Role(role.Role),
			Capacity:  role.Capacity,
			Remaining: role.Remaining,
		})
	}
	sortRoles(post.Roles)

	return post
}

// sortRoles ordena as vagas pela ordem do vocabulário
func sortRoles(roles []entities.PostRole) {
	order := make(map[entities.Role]int)
	for i, role := range entities.AllRoles() {
		order[role] = i
	}
	sort.SliceStable(roles, func(i, j int) bool {
		return order[roles[i].Role] < order[roles[j].Role]
	})
}
