package workers

import (
	"context"
	"time"

	"flock/internal/core/activity"
	activityPort "flock/internal/ports/activity"

	"go.uber.org/zap"
)

// Deliverer turns one activity into a stored and published notification.
type Deliverer interface {
	Deliver(ctx context.Context, a *activity.Activity) error
}

type NotificationWorker struct {
	ActivityRepo activityPort.ActivityRepository
	Deliverer    Deliverer
	BatchSize    int
	PollInterval time.Duration
	Logger       *zap.Logger
}

func NewNotificationWorker(
	activityRepo activityPort.ActivityRepository,
	deliverer Deliverer,
	batchSize int,
	pollInterval time.Duration,
	logger *zap.Logger,
) *NotificationWorker {
	if batchSize <= 0 {
		batchSize = 100
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &NotificationWorker{
		ActivityRepo: activityRepo,
		Deliverer:    deliverer,
		BatchSize:    batchSize,
		PollInterval: pollInterval,
		Logger:       logger,
	}
}

// Run drains pending activities every PollInterval until ctx is cancelled.
func (w *NotificationWorker) Run(ctx context.Context) {
	w.Logger.Info("notification worker started", zap.Int("batchSize", w.BatchSize))
	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := w.ProcessBatch(ctx); err != nil {
			w.Logger.Error("error fetching pending activities", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			w.Logger.Info("notification worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// ProcessBatch handles up to BatchSize pending activities and returns how many were marked
// done. A failed delivery stays pending and is retried on the next batch.
func (w *NotificationWorker) ProcessBatch(ctx context.Context) (int, error) {
	pending, err := w.ActivityRepo.GetPending(ctx, w.BatchSize)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, a := range pending {
		if ctx.Err() != nil {
			break
		}
		if w.process(ctx, a) {
			done++
		}
	}
	if len(pending) > 0 {
		w.Logger.Debug("activity batch processed", zap.Int("pending", len(pending)), zap.Int("done", done))
	}
	return done, nil
}

func (w *NotificationWorker) process(ctx context.Context, a *activity.Activity) bool {
	if a == nil {
		return false
	}
	if err := w.Deliverer.Deliver(ctx, a); err != nil {
		w.Logger.Error("could not deliver activity",
			zap.String("activityID", a.ID.String()),
			zap.String("kind", a.Kind),
			zap.Error(err))
		return false
	}
	if err := w.ActivityRepo.MarkDone(ctx, a.ID); err != nil {
		w.Logger.Warn("could not mark activity done", zap.String("activityID", a.ID.String()), zap.Error(err))
		return false
	}
	return true
}
