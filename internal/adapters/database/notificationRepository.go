package database

import (
	"context"

	"flock/internal/core/notification"
	"flock/internal/core/pagination"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepositoryDatabase struct {
	db *gorm.DB
}

func NewNotificationRepositoryDatabase(db *gorm.DB) *NotificationRepositoryDatabase {
	return &NotificationRepositoryDatabase{db: db}
}

func (repo *NotificationRepositoryDatabase) Create(ctx context.Context, n *notification.Notification) error {
	return repo.db.WithContext(ctx).Omit(clause.Associations).Create(n).Error
}

func (repo *NotificationRepositoryDatabase) ListByUser(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*notification.Notification, error) {
	q := paged{
		table: "notifications",
		model: &notification.Notification{},
		scope: func(q *gorm.DB) *gorm.DB { return q.Where("notifications.user_id = ?", userID.String()) },
		desc:  true,
	}
	var rows []*notification.Notification
	err := q.find(repo.db.WithContext(ctx), req, &rows, "Actor")
	return rows, err
}

// MarkAllRead only matches unread rows, so a read notification is never written again.
func (repo *NotificationRepositoryDatabase) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := repo.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ?", userID.String(), false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (repo *NotificationRepositoryDatabase) MarkReadByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := repo.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ? AND id IN ?", userID.String(), false, idStrings(ids)).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (repo *NotificationRepositoryDatabase) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := repo.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ?", userID.String(), false).
		Count(&n).Error
	return n, err
}
