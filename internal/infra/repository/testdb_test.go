package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/infra/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	db          *gorm.DB
	users       *UserRepository
	catalog     *CatalogRepository
	recipes     *RecipeRepository
	activity    *ActivityRepository
	follows     *FollowRepository
	shoppingLst *ShoppingListRepository
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	return &fixture{
		db:          db,
		users:       NewUserRepository(db),
		catalog:     NewCatalogRepository(db),
		recipes:     NewRecipeRepository(db),
		activity:    NewActivityRepository(db),
		follows:     NewFollowRepository(db),
		shoppingLst: NewShoppingListRepository(db),
	}
}

func (f *fixture) user(t *testing.T, username string) domain.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), domain.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    strings.ToUpper(username[:1]) + username[1:],
		LastName:     "Tester",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) ingredient(t *testing.T, name, unit string) domain.Ingredient {
	t.Helper()
	ctx := context.Background()
	_, err := f.catalog.BulkCreateIngredients(ctx, []domain.Ingredient{{Name: name, MeasurementUnit: unit}})
	require.NoError(t, err)

	all, err := f.catalog.SearchIngredients(ctx, name)
	require.NoError(t, err)
	for _, ingredient := range all {
		if ingredient.Name == name && ingredient.MeasurementUnit == unit {
			return ingredient
		}
	}
	t.Fatalf("ingredient %s (%s) not stored", name, unit)
	return domain.Ingredient{}
}

func (f *fixture) tag(t *testing.T, name, color, slug string) domain.Tag {
	t.Helper()
	ctx := context.Background()
	_, err := f.catalog.BulkCreateTags(ctx, []domain.Tag{{Name: name, Color: color, Slug: slug}})
	require.NoError(t, err)

	tags, err := f.catalog.ListTags(ctx)
	require.NoError(t, err)
	for _, tag := range tags {
		if tag.Slug == slug {
			return tag
		}
	}
	t.Fatalf("tag %s not stored", slug)
	return domain.Tag{}
}

func (f *fixture) recipe(t *testing.T, author domain.User, name string, tags []domain.Tag, ingredients ...domain.IngredientAmount) domain.Recipe {
	t.Helper()
	r, err := f.recipes.Create(context.Background(), domain.Recipe{
		Author:      author,
		Name:        name,
		Text:        "Mix and cook.",
		CookingTime: 10,
		Image:       "recipes/images/abc.png",
		Tags:        tags,
		Ingredients: ingredients,
	})
	require.NoError(t, err)
	return r
}

func amount(i domain.Ingredient, n int) domain.IngredientAmount {
	return domain.IngredientAmount{Ingredient: i, Amount: n}
}
