package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/infra/database/models"
)

// translate maps gorm sentinels onto domain errors and wraps the rest.
func translate(err error, resource, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.NotFoundError{Resource: resource}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Message: resource + " already exists"}
	}
	return errors.Wrap(err, op)
}

func toDomainUser(m models.User) domain.User {
	return domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Username:     m.Username,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PasswordHash: m.Password,
		Role:         m.Role,
		IsSuperuser:  m.IsSuperuser,
		CDate:        m.CDate,
	}
}

func toDomainTag(m models.Tag) domain.Tag {
	return domain.Tag{
		ID:    m.ID,
		Name:  m.Name,
		Color: m.Color,
		Slug:  m.Slug,
	}
}

func toDomainIngredient(m models.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		ID:              m.ID,
		Name:            m.Name,
		MeasurementUnit: m.MeasurementUnit,
	}
}

func toDomainRecipe(m models.Recipe) domain.Recipe {
	recipe := domain.Recipe{
		ID:          m.ID,
		Author:      toDomainUser(m.Author),
		Name:        m.Name,
		Text:        m.Text,
		Image:       m.Image,
		CookingTime: m.CookingTime,
		Tags:        make([]domain.Tag, 0, len(m.Tags)),
		Ingredients: make([]domain.IngredientAmount, 0, len(m.Ingredients)),
		CDate:       m.CDate,
	}
	for _, tag := range m.Tags {
		recipe.Tags = append(recipe.Tags, toDomainTag(tag))
	}
	for _, ri := range m.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, domain.IngredientAmount{
			Ingredient: toDomainIngredient(ri.Ingredient),
			Amount:     ri.Amount,
		})
	}
	return recipe
}
