package user

import (
	"context"
	"time"

	"flock/internal/core/user"

	"github.com/gofrs/uuid"
)

// UserRepository پورت برای ذخیره‌سازی و بازیابی کاربران
type UserRepository interface {
	// Create fails with a conflict when the handle is taken.
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByHandle(ctx context.Context, handle string) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type UserDTO struct {
	ID        string    `json:"id"`
	Handle    string    `json:"userId"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Handle:    u.Handle,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}
