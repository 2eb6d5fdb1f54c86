package draft

import (
	"time"

	"github.com/gofrs/uuid"
)

// Draft is unpublished post content. Only its author may change or delete it.
type Draft struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"precision:6;index"`
	UpdatedAt time.Time `gorm:"precision:6"`
}

func (d *Draft) OwnedBy(userID uuid.UUID) bool {
	return d.UserID == userID
}
