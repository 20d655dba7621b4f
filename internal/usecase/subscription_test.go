package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/foodgram/internal/domain"
)

func newSubscriptionUsecase(t *testing.T) (*SubscriptionUsecase, *fakeRecipeRepo) {
	users := newFakeUserRepo(
		domain.User{ID: 1, Username: "reader"},
		domain.User{ID: 2, Username: "cook"},
		domain.User{ID: 3, Username: "baker"},
	)
	recipes := newFakeRecipeRepo()
	for _, name := range []string{"Soup", "Stew", "Pie"} {
		_, err := recipes.Create(context.Background(), domain.Recipe{Author: users.users[2], Name: name})
		require.NoError(t, err)
	}
	return NewSubscriptionUsecase(users, &fakeFollowRepo{users: users}, recipes), recipes
}

func TestSubscribe(t *testing.T) {
	uc, _ := newSubscriptionUsecase(t)
	ctx := as(1, false)

	sub, err := uc.Subscribe(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, "cook", sub.Author.Username)
	assert.Equal(t, int64(3), sub.RecipesCount)
	require.Len(t, sub.Recipes, 2)
	assert.Equal(t, "Pie", sub.Recipes[0].Name)

	_, err = uc.Subscribe(ctx, 2, 0)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSubscribeRejectsSelfAndUnknown(t *testing.T) {
	uc, _ := newSubscriptionUsecase(t)
	ctx := as(1, false)

	_, err := uc.Subscribe(ctx, 1, 0)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Subscribe(ctx, 42, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Subscribe(context.Background(), 2, 0)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUnsubscribe(t *testing.T) {
	uc, _ := newSubscriptionUsecase(t)
	ctx := as(1, false)

	assert.ErrorIs(t, uc.Unsubscribe(ctx, 2), domain.ErrConflict)

	_, err := uc.Subscribe(ctx, 2, 0)
	require.NoError(t, err)
	require.NoError(t, uc.Unsubscribe(ctx, 2))

	assert.ErrorIs(t, uc.Unsubscribe(ctx, 1), domain.ErrConflict)
	assert.ErrorIs(t, uc.Unsubscribe(ctx, 42), domain.ErrNotFound)
}

func TestListSubscriptions(t *testing.T) {
	uc, _ := newSubscriptionUsecase(t)
	ctx := as(1, false)

	_, err := uc.Subscribe(ctx, 2, 0)
	require.NoError(t, err)
	_, err = uc.Subscribe(ctx, 3, 0)
	require.NoError(t, err)

	page, err := uc.List(ctx, domain.Pagination{Page: 1, Limit: 10}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "baker", page.Results[0].Author.Username)
	assert.Empty(t, page.Results[0].Recipes)
	assert.Equal(t, int64(0), page.Results[0].RecipesCount)
	assert.Len(t, page.Results[1].Recipes, 1)
	assert.Equal(t, int64(3), page.Results[1].RecipesCount)
}
