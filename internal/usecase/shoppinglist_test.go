package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/foodgram/internal/domain"
)

func TestBuildShoppingList(t *testing.T) {
	users := newFakeUserRepo(domain.User{ID: 1, Username: "cook", FirstName: "Ivan", LastName: "Petrov"})
	items := fakeShoppingList{items: map[int64][]domain.ShoppingListItem{
		1: {{Name: "Salt", MeasurementUnit: "g", TotalAmount: 15}},
	}}
	uc := NewShoppingListUsecase(users, items)

	list, err := uc.Build(as(1, false))
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", list.Owner.FullName())
	assert.Equal(t, "Ivan Petrov shopping list includes:\n- Salt / 15 g\n", string(list.Render()))
}

func TestBuildShoppingListEmptyCart(t *testing.T) {
	users := newFakeUserRepo(domain.User{ID: 1, Username: "cook"})
	uc := NewShoppingListUsecase(users, fakeShoppingList{})

	_, err := uc.Build(as(1, false))
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestBuildShoppingListCartWithoutIngredients(t *testing.T) {
	users := newFakeUserRepo(domain.User{ID: 1, Username: "cook", FirstName: "Ivan", LastName: "Petrov"})
	uc := NewShoppingListUsecase(users, fakeShoppingList{carts: map[int64]bool{1: true}})

	list, err := uc.Build(as(1, false))
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, "Ivan Petrov shopping list includes:\n", string(list.Render()))
}

func TestBuildShoppingListRequiresAuth(t *testing.T) {
	uc := NewShoppingListUsecase(newFakeUserRepo(), fakeShoppingList{})

	_, err := uc.Build(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
