package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/infra/database/models"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Create(ctx context.Context, userID, authorID int64) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&models.Follow{
		UserID:   userID,
		AuthorID: authorID,
	}).Error
	return translate(err, "subscription", "FollowRepository.Create")
}

// Delete reports whether a subscription existed.
func (r *FollowRepository) Delete(ctx context.Context, userID, authorID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, translate(result.Error, "subscription", "FollowRepository.Delete")
	}
	return result.RowsAffected > 0, nil
}

// Following returns the subset of authorIDs followed by userID.
func (r *FollowRepository) Following(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error) {
	following := map[int64]bool{}
	if userID == 0 || len(authorIDs) == 0 {
		return following, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, translate(err, "subscription", "FollowRepository.Following")
	}

	for _, id := range ids {
		following[id] = true
	}
	return following, nil
}

// ListAuthors pages through the authors followed by userID, most recent first.
func (r *FollowRepository) ListAuthors(ctx context.Context, userID int64, p domain.Pagination) (domain.Page[domain.User], error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return domain.Page[domain.User]{}, translate(err, "subscription", "FollowRepository.ListAuthors")
	}

	var rows []models.User
	err = r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows f ON f.author_id = users.id").
		Where("f.user_id = ?", userID).
		Order("f.c_date DESC, users.id DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&rows).Error
	if err != nil {
		return domain.Page[domain.User]{}, translate(err, "subscription", "FollowRepository.ListAuthors")
	}

	results := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		results = append(results, toDomainUser(row))
	}
	return domain.Page[domain.User]{Count: count, Results: results}, nil
}
