package comment

import (
	"time"

	"flock/internal/core/user"

	"github.com/gofrs/uuid"
)

const MaxBodyLength = 2000

// Comment belongs to a post. A non-nil ParentID makes it a reply to another comment of the
// same post.
type Comment struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	PostID    uuid.UUID  `gorm:"type:char(36);not null;index"`
	ParentID  *uuid.UUID `gorm:"type:char(36);index"`
	UserID    uuid.UUID  `gorm:"type:char(36);not null"`
	User      user.User  `gorm:"foreignKey:UserID"`
	Body      string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"precision:6;index"`
}
