package post

import (
	"time"

	"flock/internal/core/user"

	"github.com/gofrs/uuid"
)

const MaxContentLength = 280

type Post struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Content   string    `gorm:"type:text;not null"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	User      user.User `gorm:"foreignKey:UserID"`
	CreatedAt time.Time `gorm:"precision:6;index"`
	UpdatedAt time.Time `gorm:"precision:6"`
}
