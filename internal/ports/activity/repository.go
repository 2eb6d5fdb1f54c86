package activity

import (
	"context"

	"flock/internal/core/activity"

	"github.com/gofrs/uuid"
)

// ActivityRepository is the outbox written by actions and drained by the notification worker.
type ActivityRepository interface {
	Create(ctx context.Context, a *activity.Activity) error
	// GetPending returns up to limit pending rows, oldest first.
	GetPending(ctx context.Context, limit int) ([]*activity.Activity, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
}
