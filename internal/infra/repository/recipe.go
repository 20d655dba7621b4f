package repository

import (
	"context"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/infra/database/models"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create stores recipe with its tag and ingredient links. Tags and
// ingredients are referenced by ID only.
func (r *RecipeRepository) Create(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error) {
	model := models.Recipe{
		AuthorID:    recipe.Author.ID,
		Name:        recipe.Name,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		Image:       recipe.Image,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&model).Error; err != nil {
			return err
		}
		if err := replaceTags(tx, model.ID, recipe.Tags); err != nil {
			return err
		}
		return replaceIngredients(tx, model.ID, recipe.Ingredients)
	})
	if err != nil {
		return domain.Recipe{}, translate(err, "recipe", "RecipeRepository.Create")
	}

	return r.Get(ctx, model.ID)
}

// Update overwrites the scalar fields of recipe. Tag and ingredient links
// are replaced only when the corresponding flag is set.
func (r *RecipeRepository) Update(ctx context.Context, recipe domain.Recipe, withTags, withIngredients bool) (domain.Recipe, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]any{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
				"image":        recipe.Image,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if withTags {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeTag{}).Error; err != nil {
				return err
			}
			if err := replaceTags(tx, recipe.ID, recipe.Tags); err != nil {
				return err
			}
		}
		if withIngredients {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := replaceIngredients(tx, recipe.ID, recipe.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Recipe{}, translate(err, "recipe", "RecipeRepository.Update")
	}

	return r.Get(ctx, recipe.ID)
}

func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, link := range []any{&models.Favorite{}, &models.Cart{}, &models.RecipeTag{}, &models.RecipeIngredient{}} {
			if err := tx.Where("recipe_id = ?", id).Delete(link).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.Recipe{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "recipe", "RecipeRepository.Delete")
}

func (r *RecipeRepository) Get(ctx context.Context, id int64) (domain.Recipe, error) {
	var model models.Recipe
	err := r.preload(r.db.WithContext(ctx)).
		Where("recipes.id = ?", id).
		Take(&model).Error
	if err != nil {
		return domain.Recipe{}, translate(err, "recipe", "RecipeRepository.Get")
	}
	return toSortedDomainRecipe(model), nil
}

// List pages through recipes matching filter, newest first.
func (r *RecipeRepository) List(ctx context.Context, filter domain.RecipeFilter, p domain.Pagination) (domain.Page[domain.Recipe], error) {
	base := r.applyFilter(ctx, r.db.WithContext(ctx).Model(&models.Recipe{}), filter)

	var count int64
	err := base.Count(&count).Error
	if err != nil {
		return domain.Page[domain.Recipe]{}, translate(err, "recipe", "RecipeRepository.List")
	}

	var rows []models.Recipe
	err = r.preload(r.applyFilter(ctx, r.db.WithContext(ctx).Model(&models.Recipe{}), filter)).
		Order("recipes.id DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&rows).Error
	if err != nil {
		return domain.Page[domain.Recipe]{}, translate(err, "recipe", "RecipeRepository.List")
	}

	results := make([]domain.Recipe, 0, len(rows))
	for _, row := range rows {
		results = append(results, toSortedDomainRecipe(row))
	}
	return domain.Page[domain.Recipe]{Count: count, Results: results}, nil
}

// ListByAuthors returns up to limit newest recipes per author.
// A non-positive limit returns all of them.
func (r *RecipeRepository) ListByAuthors(ctx context.Context, authorIDs []int64, limit int) (map[int64][]domain.Recipe, error) {
	byAuthor := make(map[int64][]domain.Recipe, len(authorIDs))
	for _, authorID := range authorIDs {
		query := r.db.WithContext(ctx).
			Where("author_id = ?", authorID).
			Order("id DESC")
		if limit > 0 {
			query = query.Limit(limit)
		}

		var rows []models.Recipe
		if err := query.Find(&rows).Error; err != nil {
			return nil, translate(err, "recipe", "RecipeRepository.ListByAuthors")
		}

		recipes := make([]domain.Recipe, 0, len(rows))
		for _, row := range rows {
			recipes = append(recipes, toDomainRecipe(row))
		}
		byAuthor[authorID] = recipes
	}
	return byAuthor, nil
}

func (r *RecipeRepository) CountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	type countRow struct {
		AuthorID int64
		Total    int64
	}
	var rows []countRow
	err := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "recipe", "RecipeRepository.CountByAuthors")
	}

	for _, row := range rows {
		counts[row.AuthorID] = row.Total
	}
	return counts, nil
}

func (r *RecipeRepository) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC")
		}).
		Preload("Ingredients.Ingredient")
}

func (r *RecipeRepository) applyFilter(ctx context.Context, db *gorm.DB, filter domain.RecipeFilter) *gorm.DB {
	if filter.AuthorID != nil {
		db = db.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		tagged := r.db.WithContext(ctx).
			Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		db = db.Where("recipes.id IN (?)", tagged)
	}
	if filter.FavoritedBy != nil {
		favorited := r.db.WithContext(ctx).
			Model(&models.Favorite{}).
			Select("recipe_id").
			Where("user_id = ?", *filter.FavoritedBy)
		db = db.Where("recipes.id IN (?)", favorited)
	}
	if filter.InCartOf != nil {
		inCart := r.db.WithContext(ctx).
			Model(&models.Cart{}).
			Select("recipe_id").
			Where("user_id = ?", *filter.InCartOf)
		db = db.Where("recipes.id IN (?)", inCart)
	}
	return db
}

func replaceTags(tx *gorm.DB, recipeID int64, tags []domain.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	links := make([]models.RecipeTag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, models.RecipeTag{RecipeID: recipeID, TagID: tag.ID})
	}
	return tx.Create(&links).Error
}

func replaceIngredients(tx *gorm.DB, recipeID int64, ingredients []domain.IngredientAmount) error {
	if len(ingredients) == 0 {
		return nil
	}
	links := make([]models.RecipeIngredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		links = append(links, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ingredient.ID,
			Amount:       ingredient.Amount,
		})
	}
	return tx.Omit(clause.Associations).Create(&links).Error
}

func toSortedDomainRecipe(m models.Recipe) domain.Recipe {
	recipe := toDomainRecipe(m)
	sort.SliceStable(recipe.Ingredients, func(i, j int) bool {
		return recipe.Ingredients[i].Name < recipe.Ingredients[j].Name
	})
	return recipe
}
