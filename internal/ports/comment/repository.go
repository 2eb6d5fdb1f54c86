package comment

import (
	"context"
	"time"

	"flock/internal/core/comment"
	"flock/internal/core/pagination"
	userPort "flock/internal/ports/user"

	"github.com/gofrs/uuid"
)

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error)
	// ListTopLevel returns comments of postID without a parent, oldest first.
	ListTopLevel(ctx context.Context, postID uuid.UUID, req pagination.Request) ([]*comment.Comment, error)
	// ListReplies returns comments whose parent is parentID, oldest first.
	ListReplies(ctx context.Context, parentID uuid.UUID, req pagination.Request) ([]*comment.Comment, error)
	// CountReplies counts direct replies per comment id. Ids without replies are absent.
	CountReplies(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
}

type CommentDTO struct {
	ID         string            `json:"id"`
	PostID     string            `json:"postId"`
	ParentID   *string           `json:"parentId"`
	User       *userPort.UserDTO `json:"user,omitempty"`
	Body       string            `json:"body"`
	ReplyCount int64             `json:"replyCount"`
	CreatedAt  time.Time         `json:"createdAt"`
}

func NewCommentDTO(c *comment.Comment, replies int64) CommentDTO {
	dto := CommentDTO{
		ID:         c.ID.String(),
		PostID:     c.PostID.String(),
		Body:       c.Body,
		ReplyCount: replies,
		CreatedAt:  c.CreatedAt,
	}
	if c.ParentID != nil {
		parent := c.ParentID.String()
		dto.ParentID = &parent
	}
	if c.User.ID != uuid.Nil {
		author := userPort.NewUserDTO(&c.User)
		dto.User = &author
	}
	return dto
}
