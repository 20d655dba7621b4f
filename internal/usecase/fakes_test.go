package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/totegamma/foodgram/internal/domain"
)

type fakeUserRepo struct {
	users  map[int64]domain.User
	nextID int64
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[int64]domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
		if u.ID > repo.nextID {
			repo.nextID = u.ID
		}
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email || u.Username == user.Username {
			return domain.User{}, domain.ConflictError{Message: "user already exists"}
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Get(ctx context.Context, id int64) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user"}
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) List(ctx context.Context, p domain.Pagination) (domain.Page[domain.User], error) {
	all := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	return paginate(all, p), nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return domain.NotFoundError{Resource: "user"}
	}
	u.PasswordHash = hash
	f.users[id] = u
	return nil
}

type follow struct{ user, author int64 }

type fakeFollowRepo struct {
	users   *fakeUserRepo
	follows []follow
}

func (f *fakeFollowRepo) Create(ctx context.Context, userID, authorID int64) error {
	for _, fl := range f.follows {
		if fl == (follow{userID, authorID}) {
			return domain.ConflictError{Message: "subscription already exists"}
		}
	}
	f.follows = append(f.follows, follow{userID, authorID})
	return nil
}

func (f *fakeFollowRepo) Delete(ctx context.Context, userID, authorID int64) (bool, error) {
	for i, fl := range f.follows {
		if fl == (follow{userID, authorID}) {
			f.follows = append(f.follows[:i], f.follows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFollowRepo) Following(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	for _, fl := range f.follows {
		if fl.user != userID {
			continue
		}
		for _, id := range authorIDs {
			if id == fl.author {
				out[id] = true
			}
		}
	}
	return out, nil
}

func (f *fakeFollowRepo) ListAuthors(ctx context.Context, userID int64, p domain.Pagination) (domain.Page[domain.User], error) {
	var authors []domain.User
	for i := len(f.follows) - 1; i >= 0; i-- {
		if f.follows[i].user == userID {
			authors = append(authors, f.users.users[f.follows[i].author])
		}
	}
	return paginate(authors, p), nil
}

type fakeCatalog struct {
	tags        map[int64]domain.Tag
	ingredients map[int64]domain.Ingredient
}

func (f *fakeCatalog) ListTags(ctx context.Context) ([]domain.Tag, error) {
	out := make([]domain.Tag, 0, len(f.tags))
	for _, t := range f.tags {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeCatalog) GetTag(ctx context.Context, id int64) (domain.Tag, error) {
	t, ok := f.tags[id]
	if !ok {
		return domain.Tag{}, domain.NotFoundError{Resource: "tag"}
	}
	return t, nil
}

func (f *fakeCatalog) SearchIngredients(ctx context.Context, prefix string) ([]domain.Ingredient, error) {
	var out []domain.Ingredient
	for _, i := range f.ingredients {
		if strings.HasPrefix(strings.ToLower(i.Name), strings.ToLower(prefix)) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetIngredient(ctx context.Context, id int64) (domain.Ingredient, error) {
	i, ok := f.ingredients[id]
	if !ok {
		return domain.Ingredient{}, domain.NotFoundError{Resource: "ingredient"}
	}
	return i, nil
}

func (f *fakeCatalog) ExistingTagIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	for _, id := range ids {
		if _, ok := f.tags[id]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (f *fakeCatalog) ExistingIngredientIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	for _, id := range ids {
		if _, ok := f.ingredients[id]; ok {
			out[id] = true
		}
	}
	return out, nil
}

type fakeRecipeRepo struct {
	recipes    map[int64]domain.Recipe
	nextID     int64
	updates    []bool
	lastFilter domain.RecipeFilter
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[int64]domain.Recipe{}}
}

func (f *fakeRecipeRepo) Create(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error) {
	for _, r := range f.recipes {
		if r.Author.ID == recipe.Author.ID && r.Name == recipe.Name {
			return domain.Recipe{}, domain.ConflictError{Message: "recipe already exists"}
		}
	}
	f.nextID++
	recipe.ID = f.nextID
	f.recipes[recipe.ID] = recipe
	return recipe, nil
}

func (f *fakeRecipeRepo) Update(ctx context.Context, recipe domain.Recipe, withTags, withIngredients bool) (domain.Recipe, error) {
	if _, ok := f.recipes[recipe.ID]; !ok {
		return domain.Recipe{}, domain.NotFoundError{Resource: "recipe"}
	}
	f.updates = append(f.updates, withTags, withIngredients)
	f.recipes[recipe.ID] = recipe
	return recipe, nil
}

func (f *fakeRecipeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.recipes[id]; !ok {
		return domain.NotFoundError{Resource: "recipe"}
	}
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) Get(ctx context.Context, id int64) (domain.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return domain.Recipe{}, domain.NotFoundError{Resource: "recipe"}
	}
	return r, nil
}

func (f *fakeRecipeRepo) List(ctx context.Context, filter domain.RecipeFilter, p domain.Pagination) (domain.Page[domain.Recipe], error) {
	f.lastFilter = filter
	var out []domain.Recipe
	for _, r := range f.recipes {
		if filter.AuthorID != nil && r.Author.ID != *filter.AuthorID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginate(out, p), nil
}

func (f *fakeRecipeRepo) ListByAuthors(ctx context.Context, authorIDs []int64, limit int) (map[int64][]domain.Recipe, error) {
	out := map[int64][]domain.Recipe{}
	for _, id := range authorIDs {
		page, _ := f.List(ctx, domain.RecipeFilter{AuthorID: &id}, domain.Pagination{Page: 1, Limit: len(f.recipes)})
		recipes := page.Results
		if limit > 0 && len(recipes) > limit {
			recipes = recipes[:limit]
		}
		out[id] = recipes
	}
	return out, nil
}

func (f *fakeRecipeRepo) CountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int64, error) {
	out := map[int64]int64{}
	for _, r := range f.recipes {
		for _, id := range authorIDs {
			if r.Author.ID == id {
				out[id]++
			}
		}
	}
	return out, nil
}

type mark struct{ user, recipe int64 }

type fakeActivityRepo struct {
	favorites map[mark]bool
	cart      map[mark]bool
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{favorites: map[mark]bool{}, cart: map[mark]bool{}}
}

func (f *fakeActivityRepo) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	return add(f.favorites, mark{userID, recipeID}, "recipe is already in favorites")
}

func (f *fakeActivityRepo) RemoveFavorite(ctx context.Context, userID, recipeID int64) (bool, error) {
	return remove(f.favorites, mark{userID, recipeID}), nil
}

func (f *fakeActivityRepo) AddToCart(ctx context.Context, userID, recipeID int64) error {
	return add(f.cart, mark{userID, recipeID}, "recipe is already in the shopping cart")
}

func (f *fakeActivityRepo) RemoveFromCart(ctx context.Context, userID, recipeID int64) (bool, error) {
	return remove(f.cart, mark{userID, recipeID}), nil
}

func (f *fakeActivityRepo) Marks(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, map[int64]bool, error) {
	favorited, inCart := map[int64]bool{}, map[int64]bool{}
	for _, id := range recipeIDs {
		favorited[id] = f.favorites[mark{userID, id}]
		inCart[id] = f.cart[mark{userID, id}]
	}
	return favorited, inCart, nil
}

func add(set map[mark]bool, m mark, conflict string) error {
	if set[m] {
		return domain.ConflictError{Message: conflict}
	}
	set[m] = true
	return nil
}

func remove(set map[mark]bool, m mark) bool {
	if !set[m] {
		return false
	}
	delete(set, m)
	return true
}

type fakeImages struct {
	saved map[string]domain.Image
}

func (f *fakeImages) Save(ctx context.Context, key string, img domain.Image) error {
	f.saved[key] = img
	return nil
}

type fakeHasher struct{}

func (fakeHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) ComparePassword(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type fakeTokens struct {
	revoked []string
}

func (f *fakeTokens) Issue(ctx context.Context, user domain.User) (string, error) {
	if user.ID == 0 {
		return "", errors.New("no user")
	}
	return "token-" + user.Username, nil
}

func (f *fakeTokens) Revoke(ctx context.Context, token string) error {
	f.revoked = append(f.revoked, token)
	return nil
}

type fakeShoppingList struct {
	items map[int64][]domain.ShoppingListItem
	carts map[int64]bool
}

func (f fakeShoppingList) CartExists(ctx context.Context, userID int64) (bool, error) {
	return f.carts[userID] || len(f.items[userID]) > 0, nil
}

func (f fakeShoppingList) Aggregate(ctx context.Context, userID int64) ([]domain.ShoppingListItem, error) {
	return f.items[userID], nil
}

func paginate[T any](all []T, p domain.Pagination) domain.Page[T] {
	start := p.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return domain.Page[T]{Count: int64(len(all)), Results: all[start:end]}
}

func as(id int64, admin bool) context.Context {
	return domain.WithRequester(context.Background(), domain.Requester{UserID: id, IsAdmin: admin})
}
