package follower

import (
	"context"
	"time"

	"flock/internal/core/follower"
	"flock/internal/core/pagination"
	userPort "flock/internal/ports/user"

	"github.com/gofrs/uuid"
)

// FollowerRepository پورت برای ذخیره‌سازی و بازیابی دنبال‌کنندگان
type FollowerRepository interface {
	// Create fails with a conflict when the ordered pair already exists.
	Create(ctx context.Context, f *follower.Follow) error
	Delete(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	// ListFollowers returns edges with FollowingID = userID, newest first, Follower loaded.
	ListFollowers(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*follower.Follow, error)
	// ListFollowing returns edges with FollowerID = userID, newest first, Following loaded.
	ListFollowing(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*follower.Follow, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// FollowDTO is one row of a followers/following list: the edge id (the cursor) and the user
// on the other end of the edge.
type FollowDTO struct {
	ID         string           `json:"id"`
	User       userPort.UserDTO `json:"user"`
	FollowedAt time.Time        `json:"followedAt"`
}

type FollowRequest struct {
	Handle string `json:"handle" binding:"required,handle"`
}
