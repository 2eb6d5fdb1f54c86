package database

import (
	"context"

	"flock/internal/core/apperr"
	"flock/internal/core/like"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type LikeRepositoryDatabase struct {
	db *gorm.DB
}

func NewLikeRepositoryDatabase(db *gorm.DB) *LikeRepositoryDatabase {
	return &LikeRepositoryDatabase{db: db}
}

func (repo *LikeRepositoryDatabase) Create(ctx context.Context, l *like.Like) error {
	err := repo.db.WithContext(ctx).Create(l).Error
	if duplicate(err) {
		return apperr.Conflict("post already liked")
	}
	return err
}

func (repo *LikeRepositoryDatabase) Delete(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	res := repo.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID.String(), postID.String()).
		Delete(&like.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
