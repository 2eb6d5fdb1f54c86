package database

import (
	"context"

	"flock/internal/core/apperr"
	"flock/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepositoryDatabase پیاده‌سازی UserRepository برای دیتابیس
type UserRepositoryDatabase struct {
	db *gorm.DB
}

// NewUserRepositoryDatabase سازنده UserRepositoryDatabase
func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) error {
	err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
	if duplicate(err) {
		return apperr.Conflict("handle already taken")
	}
	return err
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("id = ?", id.String()).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByHandle(ctx context.Context, handle string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("handle = ?", handle).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) Update(ctx context.Context, u *user.User) error {
	return repo.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", u.ID.String()).
		Updates(map[string]any{"name": u.Name, "avatar_url": u.AvatarURL, "updated_at": u.UpdatedAt}).Error
}
