package notification

import (
	"context"
	"time"

	"flock/internal/core/notification"
	"flock/internal/core/pagination"
	userPort "flock/internal/ports/user"

	"github.com/gofrs/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *notification.Notification) error
	// ListByUser returns notifications of userID, newest first, Actor loaded.
	ListByUser(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*notification.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	// MarkReadByIDs only touches rows owned by userID; foreign ids are skipped.
	MarkReadByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type NotificationDTO struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	Actor     *userPort.UserDTO `json:"actor,omitempty"`
	SubjectID string            `json:"subjectId"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"createdAt"`
}

func NewNotificationDTO(n *notification.Notification) NotificationDTO {
	dto := NotificationDTO{
		ID:        n.ID.String(),
		Kind:      n.Kind,
		SubjectID: n.SubjectID.String(),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if n.Actor.ID != uuid.Nil {
		actor := userPort.NewUserDTO(&n.Actor)
		dto.Actor = &actor
	}
	return dto
}

type MarkReadRequest struct {
	NotificationIDs []string `json:"notificationIds" binding:"omitempty,dive,uuid"`
}

type UnreadCountDTO struct {
	Count int64 `json:"count"`
}
