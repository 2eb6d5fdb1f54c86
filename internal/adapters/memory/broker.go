package memory

import (
	"context"
	"sync"

	"flock/internal/ports/realtime"
)

// Broker is an in-process pub/sub for a single app instance. Slow subscribers lose events
// rather than block publishers.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]map[chan realtime.Event]struct{}
	buffer int
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[chan realtime.Event]struct{}), buffer: 16}
}

func (b *Broker) Publish(ctx context.Context, channel string, ev realtime.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[channel] {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

func (b *Broker) Subscribe(ctx context.Context, channel string) (<-chan realtime.Event, error) {
	ch := make(chan realtime.Event, b.buffer)

	b.mu.Lock()
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[chan realtime.Event]struct{})
	}
	b.subs[channel][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs[channel], ch)
		if len(b.subs[channel]) == 0 {
			delete(b.subs, channel)
		}
		close(ch)
		b.mu.Unlock()
	}()
	return ch, nil
}
