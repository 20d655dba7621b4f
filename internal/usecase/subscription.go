package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/totegamma/foodgram/internal/domain"
)

type SubscriptionUsecase struct {
	users   UserRepository
	follows FollowRepository
	recipes RecipeRepository
}

func NewSubscriptionUsecase(users UserRepository, follows FollowRepository, recipes RecipeRepository) *SubscriptionUsecase {
	return &SubscriptionUsecase{
		users:   users,
		follows: follows,
		recipes: recipes,
	}
}

// Subscribe makes the requester follow authorID. recipesLimit truncates the
// recipe preview of the result when positive.
func (uc *SubscriptionUsecase) Subscribe(ctx context.Context, authorID int64, recipesLimit int) (domain.Subscription, error) {
	ctx, span := tracer.Start(ctx, "Subscription.Usecase.Subscribe")
	defer span.End()

	requester := domain.RequesterFromContext(ctx)
	if !requester.Authenticated() {
		return domain.Subscription{}, domain.ErrUnauthorized
	}

	author, err := uc.users.Get(ctx, authorID)
	if err != nil {
		return domain.Subscription{}, err
	}
	if author.ID == requester.UserID {
		return domain.Subscription{}, domain.ConflictError{Message: "you cannot subscribe to yourself"}
	}

	err = uc.follows.Create(ctx, requester.UserID, author.ID)
	if errors.Is(err, domain.ErrConflict) {
		return domain.Subscription{}, domain.ConflictError{Message: "you are already subscribed to this author"}
	}
	if err != nil {
		return domain.Subscription{}, err
	}

	subscriptions, err := uc.withRecipes(ctx, []domain.User{author}, recipesLimit)
	if err != nil {
		return domain.Subscription{}, err
	}
	return subscriptions[0], nil
}

func (uc *SubscriptionUsecase) Unsubscribe(ctx context.Context, authorID int64) error {
	ctx, span := tracer.Start(ctx, "Subscription.Usecase.Unsubscribe")
	defer span.End()

	requester := domain.RequesterFromContext(ctx)
	if !requester.Authenticated() {
		return domain.ErrUnauthorized
	}

	author, err := uc.users.Get(ctx, authorID)
	if err != nil {
		return err
	}
	if author.ID == requester.UserID {
		return domain.ConflictError{Message: "you cannot unsubscribe from yourself"}
	}

	removed, err := uc.follows.Delete(ctx, requester.UserID, author.ID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ConflictError{Message: "you are not subscribed to this author"}
	}
	return nil
}

func (uc *SubscriptionUsecase) List(ctx context.Context, p domain.Pagination, recipesLimit int) (domain.Page[domain.Subscription], error) {
	ctx, span := tracer.Start(ctx, "Subscription.Usecase.List")
	defer span.End()

	requester := domain.RequesterFromContext(ctx)
	if !requester.Authenticated() {
		return domain.Page[domain.Subscription]{}, domain.ErrUnauthorized
	}

	authors, err := uc.follows.ListAuthors(ctx, requester.UserID, p)
	if err != nil {
		return domain.Page[domain.Subscription]{}, err
	}

	subscriptions, err := uc.withRecipes(ctx, authors.Results, recipesLimit)
	if err != nil {
		return domain.Page[domain.Subscription]{}, err
	}
	return domain.Page[domain.Subscription]{Count: authors.Count, Results: subscriptions}, nil
}

func (uc *SubscriptionUsecase) withRecipes(ctx context.Context, authors []domain.User, recipesLimit int) ([]domain.Subscription, error) {
	ids := make([]int64, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}

	previews, err := uc.recipes.ListByAuthors(ctx, ids, recipesLimit)
	if err != nil {
		return nil, err
	}
	counts, err := uc.recipes.CountByAuthors(ctx, ids)
	if err != nil {
		return nil, err
	}

	subscriptions := make([]domain.Subscription, 0, len(authors))
	for _, a := range authors {
		subscriptions = append(subscriptions, domain.Subscription{
			Author:       a,
			Recipes:      previews[a.ID],
			RecipesCount: counts[a.ID],
		})
	}
	return subscriptions, nil
}
