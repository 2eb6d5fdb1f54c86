package database

import (
	"context"
	"time"

	"flock/internal/core/activity"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type ActivityRepositoryDatabase struct {
	db *gorm.DB
}

func NewActivityRepositoryDatabase(db *gorm.DB) *ActivityRepositoryDatabase {
	return &ActivityRepositoryDatabase{db: db}
}

func (repo *ActivityRepositoryDatabase) Create(ctx context.Context, a *activity.Activity) error {
	return repo.db.WithContext(ctx).Create(a).Error
}

func (repo *ActivityRepositoryDatabase) GetPending(ctx context.Context, limit int) ([]*activity.Activity, error) {
	var rows []*activity.Activity
	if err := repo.db.WithContext(ctx).
		Where("status = ?", activity.StatusPending).
		Order("created_at ASC").Order("id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *ActivityRepositoryDatabase) MarkDone(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return repo.db.WithContext(ctx).Model(&activity.Activity{}).
		Where("id = ?", id.String()).
		Updates(map[string]any{"status": activity.StatusDone, "processed_at": &now}).Error
}
