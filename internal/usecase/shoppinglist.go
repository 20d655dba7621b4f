package usecase

import (
	"context"

	"github.com/totegamma/foodgram/internal/domain"
)

type ShoppingListUsecase struct {
	users UserRepository
	repo  ShoppingListRepository
}

func NewShoppingListUsecase(users UserRepository, repo ShoppingListRepository) *ShoppingListUsecase {
	return &ShoppingListUsecase{
		users: users,
		repo:  repo,
	}
}

// Build aggregates the requester's cart. A cart without recipes is
// ErrEmptyCart.
func (uc *ShoppingListUsecase) Build(ctx context.Context) (domain.ShoppingList, error) {
	ctx, span := tracer.Start(ctx, "ShoppingList.Usecase.Build")
	defer span.End()

	requester := domain.RequesterFromContext(ctx)
	if !requester.Authenticated() {
		return domain.ShoppingList{}, domain.ErrUnauthorized
	}

	owner, err := uc.users.Get(ctx, requester.UserID)
	if err != nil {
		return domain.ShoppingList{}, err
	}

	exists, err := uc.repo.CartExists(ctx, requester.UserID)
	if err != nil {
		span.RecordError(err)
		return domain.ShoppingList{}, err
	}
	if !exists {
		return domain.ShoppingList{}, domain.ErrEmptyCart
	}

	items, err := uc.repo.Aggregate(ctx, requester.UserID)
	if err != nil {
		span.RecordError(err)
		return domain.ShoppingList{}, err
	}

	return domain.ShoppingList{Owner: owner, Items: items}, nil
}
