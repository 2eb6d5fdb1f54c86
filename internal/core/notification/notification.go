package notification

import (
	"time"

	"flock/internal/core/user"

	"github.com/gofrs/uuid"
)

const (
	KindFollow  = "follow"
	KindLike    = "like"
	KindComment = "comment"
	KindReply   = "reply"
)

// Notification belongs to its recipient UserID. Read only moves from false to true.
type Notification struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	ActorID   uuid.UUID `gorm:"type:char(36);not null"`
	Actor     user.User `gorm:"foreignKey:ActorID"`
	Kind      string    `gorm:"type:varchar(20);not null"`
	SubjectID uuid.UUID `gorm:"type:char(36);not null"`
	Read      bool      `gorm:"column:is_read;not null;default:false;index"`
	CreatedAt time.Time `gorm:"precision:6;index"`
}
