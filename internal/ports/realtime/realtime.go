package realtime

import (
	"context"

	"github.com/gofrs/uuid"
)

const (
	EventNotification      = "notification"
	EventNotificationsRead = "notifications_read"
)

// Event is a named message on a channel. Payload is whatever JSON the publisher sent.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, channel string, ev Event) error
}

// Subscriber delivers events until ctx is done, then closes the channel.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan Event, error)
}

// UserChannel is the per-recipient channel name.
func UserChannel(userID uuid.UUID) string {
	return "user:" + userID.String()
}
