package presenter

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/foodgram"
	"github.com/totegamma/foodgram/internal/domain"
)

func UserCreated(u domain.User) foodgram.UserCreated {
	return foodgram.UserCreated{
		Email:     u.Email,
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func User(u domain.User, subscribed bool) foodgram.User {
	return foodgram.User{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

func Users(profiles []domain.UserProfile) []foodgram.User {
	users := make([]foodgram.User, 0, len(profiles))
	for _, p := range profiles {
		users = append(users, User(p.User, p.IsSubscribed))
	}
	return users
}

func Subscription(c echo.Context, conf domain.Config, s domain.Subscription) foodgram.Subscription {
	recipes := make([]foodgram.RecipeShort, 0, len(s.Recipes))
	for _, r := range s.Recipes {
		recipes = append(recipes, RecipeShort(c, conf, r))
	}
	return foodgram.Subscription{
		User:         User(s.Author, true),
		Recipes:      recipes,
		RecipesCount: s.RecipesCount,
	}
}

func Subscriptions(c echo.Context, conf domain.Config, subs []domain.Subscription) []foodgram.Subscription {
	out := make([]foodgram.Subscription, 0, len(subs))
	for _, s := range subs {
		out = append(out, Subscription(c, conf, s))
	}
	return out
}

func Tag(t domain.Tag) foodgram.Tag {
	return foodgram.Tag{
		ID:    t.ID,
		Name:  t.Name,
		Color: t.Color,
		Slug:  t.Slug,
	}
}

func Tags(tags []domain.Tag) []foodgram.Tag {
	out := make([]foodgram.Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, Tag(t))
	}
	return out
}

func Ingredient(i domain.Ingredient) foodgram.Ingredient {
	return foodgram.Ingredient{
		ID:              i.ID,
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit,
	}
}

func Ingredients(ingredients []domain.Ingredient) []foodgram.Ingredient {
	out := make([]foodgram.Ingredient, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, Ingredient(i))
	}
	return out
}

func Recipe(c echo.Context, conf domain.Config, d domain.RecipeDetail) foodgram.Recipe {
	ingredients := make([]foodgram.RecipeIngredient, 0, len(d.Ingredients))
	for _, i := range d.Ingredients {
		ingredients = append(ingredients, foodgram.RecipeIngredient{
			ID:              i.ID,
			Name:            i.Name,
			MeasurementUnit: i.MeasurementUnit,
			Amount:          i.Amount,
		})
	}

	return foodgram.Recipe{
		ID:               d.ID,
		Tags:             Tags(d.Tags),
		Author:           User(d.Author, d.AuthorSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      d.IsFavorited,
		IsInShoppingCart: d.IsInShoppingCart,
		Name:             d.Name,
		Image:            MediaURL(c, conf, d.Image),
		Text:             d.Text,
		CookingTime:      d.CookingTime,
	}
}

func Recipes(c echo.Context, conf domain.Config, details []domain.RecipeDetail) []foodgram.Recipe {
	out := make([]foodgram.Recipe, 0, len(details))
	for _, d := range details {
		out = append(out, Recipe(c, conf, d))
	}
	return out
}

func RecipeShort(c echo.Context, conf domain.Config, r domain.Recipe) foodgram.RecipeShort {
	return foodgram.RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       MediaURL(c, conf, r.Image),
		CookingTime: r.CookingTime,
	}
}

// MediaURL turns a storage key into an absolute URL. A relative media base
// is resolved against the request host.
func MediaURL(c echo.Context, conf domain.Config, key string) string {
	if key == "" {
		return ""
	}
	base := conf.MediaURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return base + key
	}
	return c.Scheme() + "://" + c.Request().Host + base + key
}
