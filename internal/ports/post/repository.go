package post

import (
	"context"
	"time"

	"flock/internal/core/like"
	"flock/internal/core/pagination"
	"flock/internal/core/post"
	userPort "flock/internal/ports/user"

	"github.com/gofrs/uuid"
)

// PostRepository پورت برای ذخیره‌سازی و بازیابی پست‌ها
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) error
	// FindByID loads the post with its author.
	FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	ListByUser(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*post.Post, error)
	// ListFeed returns posts by userID and everyone userID follows, newest first.
	ListFeed(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*post.Post, error)
	Stats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Stats, error)
}

type LikeRepository interface {
	// Create fails with a conflict when the user already likes the post.
	Create(ctx context.Context, l *like.Like) error
	Delete(ctx context.Context, userID, postID uuid.UUID) (bool, error)
}

type Stats struct {
	Likes    int64
	Comments int64
}

type PostDTO struct {
	ID           string            `json:"id"`
	Content      string            `json:"content"`
	UserID       string            `json:"user_id"`
	User         *userPort.UserDTO `json:"user,omitempty"`
	LikeCount    int64             `json:"likeCount"`
	CommentCount int64             `json:"commentCount"`
	CreatedAt    time.Time         `json:"createdAt"`
}

func NewPostDTO(p *post.Post, s Stats) PostDTO {
	dto := PostDTO{
		ID:           p.ID.String(),
		Content:      p.Content,
		UserID:       p.UserID.String(),
		LikeCount:    s.Likes,
		CommentCount: s.Comments,
		CreatedAt:    p.CreatedAt,
	}
	if p.User.ID != uuid.Nil {
		author := userPort.NewUserDTO(&p.User)
		dto.User = &author
	}
	return dto
}
