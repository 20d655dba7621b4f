package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShoppingListRender(t *testing.T) {
	list := ShoppingList{
		Owner: User{Username: "cook", FirstName: "Ivan", LastName: "Petrov"},
		Items: []ShoppingListItem{
			{Name: "Flour", MeasurementUnit: "g", TotalAmount: 500},
			{Name: "Salt", MeasurementUnit: "g", TotalAmount: 15},
		},
	}

	expected := "Ivan Petrov shopping list includes:\n" +
		"- Flour / 500 g\n" +
		"- Salt / 15 g\n"
	assert.Equal(t, expected, string(list.Render()))
}

func TestShoppingListRenderFallsBackToUsername(t *testing.T) {
	list := ShoppingList{
		Owner: User{Username: "cook"},
		Items: []ShoppingListItem{{Name: "Milk", MeasurementUnit: "ml", TotalAmount: 200}},
	}

	assert.Equal(t, "cook shopping list includes:\n- Milk / 200 ml\n", string(list.Render()))
}

func TestErrorMatching(t *testing.T) {
	assert.True(t, errors.Is(NotFoundError{Resource: "recipe"}, ErrNotFound))
	assert.True(t, errors.Is(ConflictError{Message: "already in cart"}, ErrConflict))
	assert.False(t, errors.Is(ConflictError{}, ErrNotFound))

	verr := &ValidationError{}
	assert.NoError(t, verr.OrNil())
	verr.Add("name", "This field is required.")
	verr.Add("cooking_time", "Ensure this value is greater than or equal to 1.")
	assert.Error(t, verr.OrNil())
	assert.Equal(t, "validation failed: cooking_time: Ensure this value is greater than or equal to 1.; name: This field is required.", verr.Error())
}

func TestRequesterContext(t *testing.T) {
	ctx := context.Background()
	assert.False(t, RequesterFromContext(ctx).Authenticated())

	ctx = WithRequester(ctx, Requester{UserID: 7, IsAdmin: true})
	r := RequesterFromContext(ctx)
	assert.Equal(t, int64(7), r.UserID)
	assert.True(t, r.IsAdmin)
}
