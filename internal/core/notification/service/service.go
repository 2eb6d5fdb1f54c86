package notificationapp

import (
	"context"
	"fmt"

	"flock/internal/core/activity"
	"flock/internal/core/apperr"
	notificationEntity "flock/internal/core/notification"
	"flock/internal/core/pagination"
	notificationPort "flock/internal/ports/notification"
	"flock/internal/ports/realtime"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// Selection says which notifications MarkRead touches: AllUnread or SpecificIDs.
type Selection interface {
	isSelection()
}

type AllUnread struct{}

type SpecificIDs []uuid.UUID

func (AllUnread) isSelection()   {}
func (SpecificIDs) isSelection() {}

// SelectionFromIDs resolves a request body: a missing or empty list means every unread
// notification.
func SelectionFromIDs(raw []string) (Selection, error) {
	if len(raw) == 0 {
		return AllUnread{}, nil
	}
	ids := make(SpecificIDs, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.FromString(r)
		if err != nil {
			return nil, apperr.BadInput("invalid notification id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type NotificationService struct {
	NotificationRepository notificationPort.NotificationRepository
	publisher              realtime.Publisher
	logger                 *zap.Logger
}

func NewNotificationService(repo notificationPort.NotificationRepository, publisher realtime.Publisher, logger *zap.Logger) *NotificationService {
	return &NotificationService{NotificationRepository: repo, publisher: publisher, logger: logger}
}

// MarkRead flips unread notifications of userID to read. Ids owned by someone else are
// skipped without an error.
func (s *NotificationService) MarkRead(ctx context.Context, userID uuid.UUID, sel Selection) error {
	var (
		n   int64
		err error
	)
	switch sel := sel.(type) {
	case SpecificIDs:
		n, err = s.NotificationRepository.MarkReadByIDs(ctx, userID, sel)
	case AllUnread, nil:
		n, err = s.NotificationRepository.MarkAllRead(ctx, userID)
	default:
		return apperr.BadInput("unknown selection")
	}
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}

	if n > 0 {
		ev := realtime.Event{Name: realtime.EventNotificationsRead, Payload: map[string]int64{"marked": n}}
		if err := s.publisher.Publish(ctx, realtime.UserChannel(userID), ev); err != nil {
			s.logger.Warn("could not publish read event", zap.String("userID", userID.String()), zap.Error(err))
		}
	}
	return nil
}

// CountUnread returns 0 for anonymous callers and whenever the count cannot be loaded.
func (s *NotificationService) CountUnread(ctx context.Context, userID *uuid.UUID) int64 {
	if userID == nil {
		return 0
	}
	n, err := s.NotificationRepository.CountUnread(ctx, *userID)
	if err != nil {
		s.logger.Warn("unread count unavailable", zap.String("userID", userID.String()), zap.Error(err))
		return 0
	}
	return n
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[notificationPort.NotificationDTO], error) {
	rows, err := s.NotificationRepository.ListByUser(ctx, userID, req)
	if err != nil {
		return pagination.Page[notificationPort.NotificationDTO]{}, fmt.Errorf("list notifications: %w", err)
	}
	page := pagination.Build(rows, req.Limit, func(n *notificationEntity.Notification) uuid.UUID { return n.ID })
	return pagination.Map(page, notificationPort.NewNotificationDTO), nil
}

// Deliver stores the notification for an activity and pushes it to the recipient's channel.
// Activities on one's own content produce nothing.
func (s *NotificationService) Deliver(ctx context.Context, a *activity.Activity) error {
	if a.SelfInflicted() {
		return nil
	}
	n := &notificationEntity.Notification{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    a.RecipientID,
		ActorID:   a.ActorID,
		Kind:      a.Kind,
		SubjectID: a.SubjectID,
		CreatedAt: a.CreatedAt,
	}
	if err := s.NotificationRepository.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	ev := realtime.Event{Name: realtime.EventNotification, Payload: notificationPort.NewNotificationDTO(n)}
	if err := s.publisher.Publish(ctx, realtime.UserChannel(a.RecipientID), ev); err != nil {
		s.logger.Warn("could not publish notification", zap.String("notificationID", n.ID.String()), zap.Error(err))
	}
	return nil
}
