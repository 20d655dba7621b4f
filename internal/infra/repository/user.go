package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}

	model := models.User{
		Email:       user.Email,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Password:    user.PasswordHash,
		Role:        role,
		IsSuperuser: user.IsSuperuser,
	}

	err := r.db.WithContext(ctx).Create(&model).Error
	if err != nil {
		return domain.User{}, translate(err, "user", "UserRepository.Create")
	}

	return toDomainUser(model), nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (domain.User, error) {
	var model models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error
	if err != nil {
		return domain.User{}, translate(err, "user", "UserRepository.Get")
	}
	return toDomainUser(model), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var model models.User
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).Take(&model).Error
	if err != nil {
		return domain.User{}, translate(err, "user", "UserRepository.GetByEmail")
	}
	return toDomainUser(model), nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "user", "UserRepository.EmailExists")
	}
	return count > 0, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "user", "UserRepository.UsernameExists")
	}
	return count > 0, nil
}

func (r *UserRepository) List(ctx context.Context, p domain.Pagination) (domain.Page[domain.User], error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	if err != nil {
		return domain.Page[domain.User]{}, translate(err, "user", "UserRepository.List")
	}

	var rows []models.User
	err = r.db.WithContext(ctx).
		Order("username ASC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&rows).Error
	if err != nil {
		return domain.Page[domain.User]{}, translate(err, "user", "UserRepository.List")
	}

	results := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		results = append(results, toDomainUser(row))
	}
	return domain.Page[domain.User]{Count: count, Results: results}, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password", hash)
	if result.Error != nil {
		return translate(result.Error, "user", "UserRepository.UpdatePassword")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
