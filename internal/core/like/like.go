package like

import (
	"time"

	"github.com/gofrs/uuid"
)

type Like struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_like"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_like;index"`
	CreatedAt time.Time `gorm:"precision:6"`
}
