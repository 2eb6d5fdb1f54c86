package database

import (
	"context"

	"flock/internal/core/apperr"
	"flock/internal/core/draft"
	"flock/internal/core/pagination"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type DraftRepositoryDatabase struct {
	db *gorm.DB
}

func NewDraftRepositoryDatabase(db *gorm.DB) *DraftRepositoryDatabase {
	return &DraftRepositoryDatabase{db: db}
}

func (repo *DraftRepositoryDatabase) Create(ctx context.Context, d *draft.Draft) error {
	return repo.db.WithContext(ctx).Create(d).Error
}

func (repo *DraftRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*draft.Draft, error) {
	var d draft.Draft
	if err := repo.db.WithContext(ctx).Where("id = ?", id.String()).First(&d).Error; err != nil {
		return nil, translate(err, "draft")
	}
	return &d, nil
}

func (repo *DraftRepositoryDatabase) Update(ctx context.Context, d *draft.Draft) error {
	return repo.db.WithContext(ctx).Model(&draft.Draft{}).
		Where("id = ?", d.ID.String()).
		Updates(map[string]any{"content": d.Content, "updated_at": d.UpdatedAt}).Error
}

func (repo *DraftRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	res := repo.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&draft.Draft{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("draft")
	}
	return nil
}

func (repo *DraftRepositoryDatabase) ListByUser(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*draft.Draft, error) {
	q := paged{
		table: "drafts",
		model: &draft.Draft{},
		scope: func(q *gorm.DB) *gorm.DB { return q.Where("drafts.user_id = ?", userID.String()) },
		desc:  true,
	}
	var drafts []*draft.Draft
	err := q.find(repo.db.WithContext(ctx), req, &drafts)
	return drafts, err
}
