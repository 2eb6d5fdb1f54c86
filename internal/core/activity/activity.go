package activity

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Activity is an outbox row written by a mutating action. The notification worker turns
// pending rows into notifications for RecipientID.
type Activity struct {
	ID          uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	Kind        string     `gorm:"type:varchar(20);not null"`
	ActorID     uuid.UUID  `gorm:"type:char(36);not null"`
	RecipientID uuid.UUID  `gorm:"type:char(36);not null"`
	SubjectID   uuid.UUID  `gorm:"type:char(36);not null"`
	Status      string     `gorm:"type:varchar(20);not null;index"` // pending, done
	CreatedAt   time.Time  `gorm:"precision:6;index"`
	ProcessedAt *time.Time `gorm:"index"`
}

func New(kind string, actorID, recipientID, subjectID uuid.UUID) *Activity {
	return &Activity{
		ID:          uuid.Must(uuid.NewV7()),
		Kind:        kind,
		ActorID:     actorID,
		RecipientID: recipientID,
		SubjectID:   subjectID,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}

// SelfInflicted reports whether the actor acted on their own content.
func (a *Activity) SelfInflicted() bool {
	return a.ActorID == a.RecipientID
}
