package database

import (
	"context"

	"flock/internal/core/apperr"
	"flock/internal/core/follower"
	"flock/internal/core/pagination"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowerRepositoryDatabase پیاده‌سازی FollowerRepository برای دیتابیس
type FollowerRepositoryDatabase struct {
	db *gorm.DB
}

// NewFollowerRepositoryDatabase سازنده FollowerRepositoryDatabase
func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{db: db}
}

func (repo *FollowerRepositoryDatabase) Create(ctx context.Context, f *follower.Follow) error {
	err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(f).Error
	if duplicate(err) {
		return apperr.Conflict("already following this user")
	}
	return err
}

func (repo *FollowerRepositoryDatabase) Delete(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	res := repo.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID.String(), followingID.String()).
		Delete(&follower.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (repo *FollowerRepositoryDatabase) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&follower.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID.String(), followingID.String()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *FollowerRepositoryDatabase) ListFollowers(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*follower.Follow, error) {
	var edges []*follower.Follow
	err := repo.edges("follows.following_id", userID).find(repo.db.WithContext(ctx), req, &edges, "Follower")
	return edges, err
}

func (repo *FollowerRepositoryDatabase) ListFollowing(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*follower.Follow, error) {
	var edges []*follower.Follow
	err := repo.edges("follows.follower_id", userID).find(repo.db.WithContext(ctx), req, &edges, "Following")
	return edges, err
}

func (repo *FollowerRepositoryDatabase) edges(column string, userID uuid.UUID) paged {
	return paged{
		table: "follows",
		model: &follower.Follow{},
		scope: func(q *gorm.DB) *gorm.DB { return q.Where(column+" = ?", userID.String()) },
		desc:  true,
	}
}

func (repo *FollowerRepositoryDatabase) DeleteAll(ctx context.Context) (int64, error) {
	res := repo.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&follower.Follow{})
	return res.RowsAffected, res.Error
}
