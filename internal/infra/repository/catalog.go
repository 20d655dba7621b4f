package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/infra/database/models"
)

const bulkBatchSize = 500

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	var rows []models.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	if err != nil {
		return nil, translate(err, "tag", "CatalogRepository.ListTags")
	}

	tags := make([]domain.Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, toDomainTag(row))
	}
	return tags, nil
}

func (r *CatalogRepository) GetTag(ctx context.Context, id int64) (domain.Tag, error) {
	var row models.Tag
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		return domain.Tag{}, translate(err, "tag", "CatalogRepository.GetTag")
	}
	return toDomainTag(row), nil
}

// SearchIngredients lists ingredients whose name starts with prefix,
// ignoring case. An empty prefix lists everything.
func (r *CatalogRepository) SearchIngredients(ctx context.Context, prefix string) ([]domain.Ingredient, error) {
	query := r.db.WithContext(ctx).Order("name ASC").Order("measurement_unit ASC")
	if prefix != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", escapeLike(strings.ToLower(prefix))+"%")
	}

	var rows []models.Ingredient
	err := query.Find(&rows).Error
	if err != nil {
		return nil, translate(err, "ingredient", "CatalogRepository.SearchIngredients")
	}

	ingredients := make([]domain.Ingredient, 0, len(rows))
	for _, row := range rows {
		ingredients = append(ingredients, toDomainIngredient(row))
	}
	return ingredients, nil
}

func (r *CatalogRepository) GetIngredient(ctx context.Context, id int64) (domain.Ingredient, error) {
	var row models.Ingredient
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		return domain.Ingredient{}, translate(err, "ingredient", "CatalogRepository.GetIngredient")
	}
	return toDomainIngredient(row), nil
}

// ExistingTagIDs returns which of ids are present in the tags table.
func (r *CatalogRepository) ExistingTagIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	return existingIDs(ctx, r.db, &models.Tag{}, ids)
}

// ExistingIngredientIDs returns which of ids are present in the ingredients table.
func (r *CatalogRepository) ExistingIngredientIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	return existingIDs(ctx, r.db, &models.Ingredient{}, ids)
}

// BulkCreateIngredients inserts ingredients, skipping (name, unit) pairs
// that already exist. It returns the number of inserted rows.
func (r *CatalogRepository) BulkCreateIngredients(ctx context.Context, ingredients []domain.Ingredient) (int64, error) {
	if len(ingredients) == 0 {
		return 0, nil
	}

	rows := make([]models.Ingredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		rows = append(rows, models.Ingredient{
			Name:            ingredient.Name,
			MeasurementUnit: ingredient.MeasurementUnit,
		})
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, bulkBatchSize)
	if result.Error != nil {
		return 0, translate(result.Error, "ingredient", "CatalogRepository.BulkCreateIngredients")
	}
	return result.RowsAffected, nil
}

// BulkCreateTags inserts tags, skipping any that collide with existing ones.
func (r *CatalogRepository) BulkCreateTags(ctx context.Context, tags []domain.Tag) (int64, error) {
	if len(tags) == 0 {
		return 0, nil
	}

	rows := make([]models.Tag, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, models.Tag{
			Name:  tag.Name,
			Color: tag.Color,
			Slug:  tag.Slug,
		})
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, bulkBatchSize)
	if result.Error != nil {
		return 0, translate(result.Error, "tag", "CatalogRepository.BulkCreateTags")
	}
	return result.RowsAffected, nil
}

func existingIDs(ctx context.Context, db *gorm.DB, model any, ids []int64) (map[int64]bool, error) {
	existing := map[int64]bool{}
	if len(ids) == 0 {
		return existing, nil
	}

	var found []int64
	err := db.WithContext(ctx).Model(model).Where("id IN ?", ids).Pluck("id", &found).Error
	if err != nil {
		return nil, translate(err, "catalog", "CatalogRepository.existingIDs")
	}
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
