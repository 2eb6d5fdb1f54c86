package workers

import (
	"context"
	"errors"
	"testing"

	"flock/internal/adapters/memory"
	"flock/internal/core/activity"
	"flock/internal/core/notification"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockDeliverer struct {
	mock.Mock
}

func (m *mockDeliverer) Deliver(ctx context.Context, a *activity.Activity) error {
	return m.Called(ctx, a).Error(0)
}

func enqueue(t *testing.T, store *memory.Store, n int) []*activity.Activity {
	t.Helper()
	out := make([]*activity.Activity, n)
	for i := range out {
		out[i] = activity.New(notification.KindFollow, uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()))
		require.NoError(t, store.Activities().Create(context.Background(), out[i]))
	}
	return out
}

func TestProcessBatchMarksDelivered(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	enqueue(t, store, 3)

	d := new(mockDeliverer)
	d.On("Deliver", mock.Anything, mock.Anything).Return(nil)

	w := NewNotificationWorker(store.Activities(), d, 2, 0, zap.NewNop())
	done, err := w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, done)

	done, err = w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, done)

	pending, err := store.Activities().GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
	d.AssertNumberOfCalls(t, "Deliver", 3)
}

func TestFailedDeliveryStaysPending(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	queued := enqueue(t, store, 2)

	d := new(mockDeliverer)
	d.On("Deliver", mock.Anything, mock.MatchedBy(func(a *activity.Activity) bool { return a.ID == queued[0].ID })).
		Return(errors.New("db down"))
	d.On("Deliver", mock.Anything, mock.Anything).Return(nil)

	w := NewNotificationWorker(store.Activities(), d, 10, 0, zap.NewNop())
	done, err := w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, done)

	pending, err := store.Activities().GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, queued[0].ID, pending[0].ID)
}

func TestWorkerDefaults(t *testing.T) {
	w := NewNotificationWorker(memory.New().Activities(), new(mockDeliverer), 0, 0, zap.NewNop())
	assert.Equal(t, 100, w.BatchSize)
	assert.Positive(t, w.PollInterval)
}
