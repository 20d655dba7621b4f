package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/policy"
)

// RecipeListInput carries the query filters of a recipe listing.
// The favorite and cart filters only apply to authenticated requesters.
type RecipeListInput struct {
	AuthorID         *int64
	Tags             []string
	IsFavorited      bool
	IsInShoppingCart bool
}

var allowedImageExtensions = map[string]bool{
	"png":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

type RecipeUsecase struct {
	recipes  RecipeRepository
	catalog  CatalogRepository
	activity ActivityRepository
	follows  FollowRepository
	images   ImageStorage
	policy   Authorizer
}

func NewRecipeUsecase(
	recipes RecipeRepository,
	catalog CatalogRepository,
	activity ActivityRepository,
	follows FollowRepository,
	images ImageStorage,
	authorizer Authorizer,
) *RecipeUsecase {
	return &RecipeUsecase{
		recipes:  recipes,
		catalog:  catalog,
		activity: activity,
		follows:  follows,
		images:   images,
		policy:   authorizer,
	}
}

func (uc *RecipeUsecase) List(ctx context.Context, input RecipeListInput, p domain.Pagination) (domain.Page[domain.RecipeDetail], error) {
	ctx, span := tracer.Start(ctx, "Recipe.Usecase.List")
	defer span.End()

	if err := uc.checkTagSlugs(ctx, input.Tags); err != nil {
		return domain.Page[domain.RecipeDetail]{}, err
	}

	requester := domain.RequesterFromContext(ctx)
	filter := domain.RecipeFilter{
		AuthorID: input.AuthorID,
		TagSlugs: input.Tags,
	}
	if requester.Authenticated() {
		if input.IsFavorited {
			filter.FavoritedBy = &requester.UserID
		}
		if input.IsInShoppingCart {
			filter.InCartOf = &requester.UserID
		}
	}

	page, err := uc.recipes.List(ctx, filter, p)
	if err != nil {
		span.RecordError(err)
		return domain.Page[domain.RecipeDetail]{}, err
	}

	details, err := uc.details(ctx, page.Results)
	if err != nil {
		return domain.Page[domain.RecipeDetail]{}, err
	}
	return domain.Page[domain.RecipeDetail]{Count: page.Count, Results: details}, nil
}

func (uc *RecipeUsecase) Get(ctx context.Context, id int64) (domain.RecipeDetail, error) {
	ctx, span := tracer.Start(ctx, "Recipe.Usecase.Get")
	defer span.End()

	recipe, err := uc.recipes.Get(ctx, id)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	if err := uc.authorize(ctx, policy.ActionRecipeRead, recipe.Author.ID); err != nil {
		return domain.RecipeDetail{}, err
	}
	return uc.detail(ctx, recipe)
}

func (uc *RecipeUsecase) Create(ctx context.Context, input domain.RecipeWrite) (domain.RecipeDetail, error) {
	ctx, span := tracer.Start(ctx, "Recipe.Usecase.Create")
	defer span.End()

	requester := domain.RequesterFromContext(ctx)
	if err := uc.authorize(ctx, policy.ActionRecipeCreate, requester.UserID); err != nil {
		return domain.RecipeDetail{}, err
	}

	recipe := domain.Recipe{Author: domain.User{ID: requester.UserID}}
	if err := uc.apply(ctx, &recipe, input, true); err != nil {
		return domain.RecipeDetail{}, err
	}

	created, err := uc.recipes.Create(ctx, recipe)
	if err != nil {
		span.RecordError(err)
		return domain.RecipeDetail{}, duplicateName(err)
	}
	return uc.detail(ctx, created)
}

// Update applies the non-nil fields of input. Tags and ingredients, when
// given, replace the existing sets.
func (uc *RecipeUsecase) Update(ctx context.Context, id int64, input domain.RecipeWrite) (domain.RecipeDetail, error) {
	ctx, span := tracer.Start(ctx, "Recipe.Usecase.Update")
	defer span.End()

	recipe, err := uc.recipes.Get(ctx, id)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	if err := uc.authorize(ctx, policy.ActionRecipeUpdate, recipe.Author.ID); err != nil {
		return domain.RecipeDetail{}, err
	}

	if err := uc.apply(ctx, &recipe, input, false); err != nil {
		return domain.RecipeDetail{}, err
	}

	updated, err := uc.recipes.Update(ctx, recipe, input.Tags != nil, input.Ingredients != nil)
	if err != nil {
		span.RecordError(err)
		return domain.RecipeDetail{}, duplicateName(err)
	}
	return uc.detail(ctx, updated)
}

func (uc *RecipeUsecase) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Recipe.Usecase.Delete")
	defer span.End()

	recipe, err := uc.recipes.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.authorize(ctx, policy.ActionRecipeDelete, recipe.Author.ID); err != nil {
		return err
	}
	return uc.recipes.Delete(ctx, id)
}

func (uc *RecipeUsecase) AddFavorite(ctx context.Context, id int64) (domain.Recipe, error) {
	return uc.mark(ctx, "Recipe.Usecase.AddFavorite", id, uc.activity.AddFavorite)
}

func (uc *RecipeUsecase) RemoveFavorite(ctx context.Context, id int64) error {
	return uc.unmark(ctx, "Recipe.Usecase.RemoveFavorite", id, uc.activity.RemoveFavorite, "recipe is not in favorites")
}

func (uc *RecipeUsecase) AddToCart(ctx context.Context, id int64) (domain.Recipe, error) {
	return uc.mark(ctx, "Recipe.Usecase.AddToCart", id, uc.activity.AddToCart)
}

func (uc *RecipeUsecase) RemoveFromCart(ctx context.Context, id int64) error {
	return uc.unmark(ctx, "Recipe.Usecase.RemoveFromCart", id, uc.activity.RemoveFromCart, "recipe is not in the shopping cart")
}

func (uc *RecipeUsecase) mark(ctx context.Context, spanName string, id int64, add func(context.Context, int64, int64) error) (domain.Recipe, error) {
	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	requester := domain.RequesterFromContext(ctx)
	if !requester.Authenticated() {
		return domain.Recipe{}, domain.ErrUnauthorized
	}

	recipe, err := uc.recipes.Get(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}
	if err := add(ctx, requester.UserID, recipe.ID); err != nil {
		return domain.Recipe{}, err
	}
	return recipe, nil
}

func (uc *RecipeUsecase) unmark(ctx context.Context, spanName string, id int64, remove func(context.Context, int64, int64) (bool, error), missing string) error {
	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	requester := domain.RequesterFromContext(ctx)
	if !requester.Authenticated() {
		return domain.ErrUnauthorized
	}

	recipe, err := uc.recipes.Get(ctx, id)
	if err != nil {
		return err
	}
	removed, err := remove(ctx, requester.UserID, recipe.ID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ConflictError{Message: missing}
	}
	return nil
}

func (uc *RecipeUsecase) authorize(ctx context.Context, action string, authorID int64) error {
	requester := domain.RequesterFromContext(ctx)
	rc := policy.RequestContext{
		Requester: map[string]any{
			"id":            requester.UserID,
			"authenticated": requester.Authenticated(),
			"is_admin":      requester.IsAdmin,
		},
		This: map[string]any{
			"author_id": authorID,
		},
	}

	allowed, err := uc.policy.Allowed(rc, action)
	if err != nil {
		return errors.Wrap(err, "evaluate policy")
	}
	if allowed {
		return nil
	}
	if !requester.Authenticated() {
		return domain.ErrUnauthorized
	}
	return domain.ErrPermissionDenied
}

// apply validates input and copies it onto recipe. On create every field
// is required; on update only the given ones are checked.
func (uc *RecipeUsecase) apply(ctx context.Context, recipe *domain.Recipe, input domain.RecipeWrite, create bool) error {
	var v domain.ValidationError

	if input.Name != nil || create {
		name := deref(input.Name)
		if checkRequired(&v, "name", name, domain.MaxNameLength) {
			recipe.Name = name
		}
	}
	if input.Text != nil || create {
		text := deref(input.Text)
		if checkRequired(&v, "text", text, 0) {
			recipe.Text = text
		}
	}
	if input.CookingTime != nil || create {
		switch {
		case input.CookingTime == nil:
			v.Add("cooking_time", fieldRequired)
		case *input.CookingTime < domain.MinCookingTime:
			v.Add("cooking_time", fmt.Sprintf("Ensure this value is greater than or equal to %d.", domain.MinCookingTime))
		default:
			recipe.CookingTime = *input.CookingTime
		}
	}
	if input.Image != nil || create {
		switch {
		case input.Image == nil || len(input.Image.Data) == 0:
			v.Add("image", fieldRequired)
		case !allowedImageExtensions[input.Image.Extension]:
			v.Add("image", "Upload a valid image.")
		}
	}

	if input.Tags != nil || create {
		tags, err := uc.checkTags(ctx, &v, input.Tags)
		if err != nil {
			return err
		}
		recipe.Tags = tags
	}
	if input.Ingredients != nil || create {
		ingredients, err := uc.checkIngredients(ctx, &v, input.Ingredients)
		if err != nil {
			return err
		}
		recipe.Ingredients = ingredients
	}

	if err := v.OrNil(); err != nil {
		return err
	}

	if input.Image != nil {
		key := imageKey(*input.Image)
		if err := uc.images.Save(ctx, key, *input.Image); err != nil {
			return errors.Wrap(err, "save recipe image")
		}
		recipe.Image = key
	}
	return nil
}

// checkTagSlugs rejects a list filter naming a tag that does not exist.
func (uc *RecipeUsecase) checkTagSlugs(ctx context.Context, slugs []string) error {
	if len(slugs) == 0 {
		return nil
	}
	tags, err := uc.catalog.ListTags(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(tags))
	for _, tag := range tags {
		known[tag.Slug] = true
	}

	v := &domain.ValidationError{}
	for _, slug := range slugs {
		if !known[slug] {
			v.Add("tags", "Select a valid choice. "+slug+" is not one of the available choices.")
		}
	}
	return v.OrNil()
}

func (uc *RecipeUsecase) checkTags(ctx context.Context, v *domain.ValidationError, input *[]int64) ([]domain.Tag, error) {
	if input == nil || len(*input) == 0 {
		v.Add("tags", "At least one tag is required.")
		return nil, nil
	}

	ids := *input
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			v.Add("tags", "Tags must not repeat.")
			return nil, nil
		}
		seen[id] = true
	}

	existing, err := uc.catalog.ExistingTagIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	tags := make([]domain.Tag, 0, len(ids))
	for _, id := range ids {
		if !existing[id] {
			v.Add("tags", "Tag with id "+strconv.FormatInt(id, 10)+" does not exist.")
			continue
		}
		tags = append(tags, domain.Tag{ID: id})
	}
	return tags, nil
}

func (uc *RecipeUsecase) checkIngredients(ctx context.Context, v *domain.ValidationError, input *[]domain.IngredientInput) ([]domain.IngredientAmount, error) {
	if input == nil || len(*input) == 0 {
		v.Add("ingredients", "At least one ingredient is required.")
		return nil, nil
	}

	items := *input
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		if seen[item.ID] {
			v.Add("ingredients", "Ingredients must not repeat.")
			return nil, nil
		}
		seen[item.ID] = true
		ids = append(ids, item.ID)
	}

	existing, err := uc.catalog.ExistingIngredientIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	amounts := make([]domain.IngredientAmount, 0, len(items))
	for _, item := range items {
		if !existing[item.ID] {
			v.Add("ingredients", "Ingredient with id "+strconv.FormatInt(item.ID, 10)+" does not exist.")
			continue
		}
		if item.Amount < domain.MinIngredientAmount {
			v.Add("ingredients", fmt.Sprintf("Amount must be at least %d.", domain.MinIngredientAmount))
			continue
		}
		amounts = append(amounts, domain.IngredientAmount{
			Ingredient: domain.Ingredient{ID: item.ID},
			Amount:     item.Amount,
		})
	}
	return amounts, nil
}

func (uc *RecipeUsecase) detail(ctx context.Context, recipe domain.Recipe) (domain.RecipeDetail, error) {
	details, err := uc.details(ctx, []domain.Recipe{recipe})
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return details[0], nil
}

// details annotates recipes with the requester's favorites, cart and
// subscriptions.
func (uc *RecipeUsecase) details(ctx context.Context, recipes []domain.Recipe) ([]domain.RecipeDetail, error) {
	requester := domain.RequesterFromContext(ctx)

	recipeIDs := make([]int64, 0, len(recipes))
	authorIDs := make([]int64, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.Author.ID)
	}

	favorited, inCart, err := uc.activity.Marks(ctx, requester.UserID, recipeIDs)
	if err != nil {
		return nil, err
	}
	following, err := uc.follows.Following(ctx, requester.UserID, authorIDs)
	if err != nil {
		return nil, err
	}

	details := make([]domain.RecipeDetail, 0, len(recipes))
	for _, r := range recipes {
		details = append(details, domain.RecipeDetail{
			Recipe:           r,
			AuthorSubscribed: following[r.Author.ID],
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
		})
	}
	return details, nil
}

func duplicateName(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		v := &domain.ValidationError{}
		v.Add("name", "You already have a recipe with this name.")
		return v
	}
	return err
}

// imageKey addresses img by content so identical uploads share one object.
func imageKey(img domain.Image) string {
	return fmt.Sprintf("%s%016x.%s", domain.RecipeImagePrefix, xxh3.Hash(img.Data), img.Extension)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
