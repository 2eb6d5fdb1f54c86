package redis

import (
	"context"
	"encoding/json"

	"flock/internal/ports/realtime"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// PubSubRedis carries realtime events over Redis PUBLISH/SUBSCRIBE so every app instance sees
// them.
type PubSubRedis struct {
	Client *redis.Client
	logger *zap.Logger
}

func NewPubSubRedis(client *redis.Client, logger *zap.Logger) *PubSubRedis {
	return &PubSubRedis{
		Client: client,
		logger: logger,
	}
}

func (r *PubSubRedis) Publish(ctx context.Context, channel string, ev realtime.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return r.Client.Publish(ctx, channel, body).Err()
}

// Subscribe forwards messages on channel until ctx is done. Messages that are not events are
// dropped.
func (r *PubSubRedis) Subscribe(ctx context.Context, channel string) (<-chan realtime.Event, error) {
	sub := r.Client.Subscribe(ctx, channel)
	// منتظر تأیید اشتراک
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan realtime.Event)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var raw struct {
					Name    string          `json:"event"`
					Payload json.RawMessage `json:"payload"`
				}
				if err := json.Unmarshal([]byte(msg.Payload), &raw); err != nil {
					r.logger.Warn("dropping malformed event", zap.String("channel", channel), zap.Error(err))
					continue
				}
				select {
				case out <- realtime.Event{Name: raw.Name, Payload: raw.Payload}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
