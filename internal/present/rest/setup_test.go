package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/totegamma/foodgram"
	"github.com/totegamma/foodgram/internal/config"
	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/infra/cache"
	"github.com/totegamma/foodgram/internal/infra/database"
	"github.com/totegamma/foodgram/internal/infra/repository"
	"github.com/totegamma/foodgram/internal/infra/storage"
	"github.com/totegamma/foodgram/internal/logger"
	"github.com/totegamma/foodgram/internal/present/rest/middleware"
	"github.com/totegamma/foodgram/internal/service"
	"github.com/totegamma/foodgram/internal/usecase"
	"github.com/totegamma/foodgram/policy"
)

type testServer struct {
	e       *echo.Echo
	catalog *repository.CatalogRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := logger.Nop()
	conf := domain.Config{PageSize: 2, MaxPageSize: 10, MediaURL: "/media/"}

	users := repository.NewUserRepository(db)
	follows := repository.NewFollowRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	catalog := repository.NewCachedCatalogRepository(catalogRepo, cache.NewLocal(time.Minute), time.Minute, log)
	recipes := repository.NewRecipeRepository(db)
	activity := repository.NewActivityRepository(db)
	shoppingList := repository.NewShoppingListRepository(db)

	auth := service.NewAuthService(
		config.Auth{JwtSecret: "test-secret", TokenTTLHours: 1},
		users,
		service.NewLocalRevocationStore(),
	)
	engine, err := policy.NewRecipeEngine()
	require.NoError(t, err)
	mediaRoot := t.TempDir()

	handler := NewHandler(
		conf,
		log,
		usecase.NewUserUsecase(users, follows, auth, auth),
		usecase.NewSubscriptionUsecase(users, follows, recipes),
		usecase.NewCatalogUsecase(catalog),
		usecase.NewRecipeUsecase(recipes, catalog, activity, follows, storage.NewLocal(mediaRoot), engine),
		usecase.NewShoppingListUsecase(users, shoppingList),
	)
	e := NewServer(handler, middleware.NewAuthMiddleware(auth), log, ServerOptions{MediaRoot: mediaRoot})

	return &testServer{e: e, catalog: catalogRepo}
}

// do performs a request and decodes a JSON response into out when non-nil.
func (s *testServer) do(t *testing.T, method, path, token string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Token "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

// signup registers username and returns its id and token.
func (s *testServer) signup(t *testing.T, username string) (int64, string) {
	t.Helper()

	var created foodgram.UserCreated
	rec := s.do(t, http.MethodPost, "/api/users/", "", foodgram.UserCreateRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		LastName:  "Tester",
		Password:  "s3cret-pass",
	}, &created)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var token foodgram.TokenResponse
	rec = s.do(t, http.MethodPost, "/api/auth/token/login/", "", foodgram.LoginRequest{
		Email:    username + "@example.com",
		Password: "s3cret-pass",
	}, &token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	return created.ID, token.AuthToken
}

func (s *testServer) seedCatalog(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := s.catalog.BulkCreateTags(ctx, []domain.Tag{
		{Name: "Breakfast", Color: "#FF0000", Slug: "breakfast"},
		{Name: "Lunch", Color: "#00FF00", Slug: "lunch"},
	})
	require.NoError(t, err)
	_, err = s.catalog.BulkCreateIngredients(ctx, []domain.Ingredient{
		{Name: "Salt", MeasurementUnit: "g"},
		{Name: "Eggs", MeasurementUnit: "pcs"},
		{Name: "Sugar", MeasurementUnit: "g"},
	})
	require.NoError(t, err)
}

func (s *testServer) ingredientID(t *testing.T, name string) int64 {
	t.Helper()
	var found []foodgram.Ingredient
	rec := s.do(t, http.MethodGet, "/api/ingredients/?name="+name, "", nil, &found)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, found)
	return found[0].ID
}

func (s *testServer) tagID(t *testing.T, slug string) int64 {
	t.Helper()
	var tags []foodgram.Tag
	rec := s.do(t, http.MethodGet, "/api/tags/", "", nil, &tags)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, tag := range tags {
		if tag.Slug == slug {
			return tag.ID
		}
	}
	t.Fatalf("tag %s not found", slug)
	return 0
}

func ptr[T any](v T) *T {
	return &v
}

var pngImage = foodgram.ImageDataURL("image/png", []byte("\x89PNG\r\n\x1a\nfake"))

func (s *testServer) createRecipe(t *testing.T, token, name string, tags []int64, ingredients ...foodgram.IngredientAmount) foodgram.Recipe {
	t.Helper()
	var recipe foodgram.Recipe
	rec := s.do(t, http.MethodPost, "/api/recipes/", token, foodgram.RecipeWriteRequest{
		Ingredients: &ingredients,
		Tags:        &tags,
		Image:       ptr(pngImage),
		Name:        ptr(name),
		Text:        ptr("Mix and cook."),
		CookingTime: ptr(10),
	}, &recipe)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return recipe
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
