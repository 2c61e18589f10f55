package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/domain/repositories"
)

// SearchRepository implementa repositories.SearchRepository sobre uma tabela de projeção
type SearchRepository struct {
	db *gorm.DB
}

// NewSearchRepository cria um novo SearchRepository
func NewSearchRepository(db *gorm.DB) repositories.SearchRepository {
	return &SearchRepository{db: db}
}

// Index grava ou substitui o documento do post
func (r *SearchRepository) Index(ctx context.Context, doc repositories.SearchDocument) error {
	return conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "status", "updated_at"}),
		}).
		Create(&PostSearchDocumentModel{
			PostID:      doc.PostID,
			Title:       doc.Title,
			Description: doc.Description,
			Status:      string(doc.Status),
		}).Error
}

func (r *SearchRepository) Remove(ctx context.Context, postID string) error {
	return conn(ctx, r.db).Where("post_id = ?", postID).Delete(&PostSearchDocumentModel{}).Error
}

// Search procura o termo em título e descrição, apenas entre posts abertos
func (r *SearchRepository) Search(ctx context.Context, query string, page, pageSize int) ([]repositories.SearchDocument, error) {
	var models []*PostSearchDocumentModel

	db := conn(ctx, r.db).Where("status = ?", string(entities.PostStatusOpen))

	if term := strings.TrimSpace(strings.ToLower(query)); term != "" {
		like := "%" + escapeLike(term) + "%"
		db = db.Where("(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", like, like)
	}

	if err := paginate(db.Order("updated_at DESC, post_id"), page, pageSize).Find(&models).Error; err != nil {
		return nil, err
	}

	docs := make([]repositories.SearchDocument, 0, len(models))
	for _, model := range models {
		docs = append(docs, repositories.SearchDocument{
			PostID:      model.PostID,
			Title:       model.Title,
			Description: model.Description,
			Status:      entities.PostStatus(model.Status),
		})
	}
	return docs, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
