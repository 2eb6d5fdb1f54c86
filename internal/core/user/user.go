package user

import (
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Handle    string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(64);not null"`
	AvatarURL string    `gorm:"type:varchar(255)"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"precision:6"`
	UpdatedAt time.Time `gorm:"precision:6"`
}
