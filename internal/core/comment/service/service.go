package commentapp

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"flock/internal/core/activity"
	"flock/internal/core/apperr"
	commentEntity "flock/internal/core/comment"
	"flock/internal/core/notification"
	"flock/internal/core/pagination"
	activityPort "flock/internal/ports/activity"
	commentPort "flock/internal/ports/comment"
	postPort "flock/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type CommentService struct {
	CommentRepository  commentPort.CommentRepository
	PostRepository     postPort.PostRepository
	ActivityRepository activityPort.ActivityRepository
	logger             *zap.Logger
}

func NewCommentService(
	commentRepo commentPort.CommentRepository,
	postRepo postPort.PostRepository,
	activityRepo activityPort.ActivityRepository,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		CommentRepository:  commentRepo,
		PostRepository:     postRepo,
		ActivityRepository: activityRepo,
		logger:             logger,
	}
}

// CreateComment adds a comment to a post, or a reply when parentID is set. The parent must
// belong to the same post.
func (s *CommentService) CreateComment(ctx context.Context, userID, postID uuid.UUID, parentID *uuid.UUID, body string) (*commentPort.CommentDTO, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.BadInput("comment body must not be empty")
	}
	if utf8.RuneCountInString(body) > commentEntity.MaxBodyLength {
		return nil, apperr.BadInput(fmt.Sprintf("comment exceeds %d characters", commentEntity.MaxBodyLength))
	}

	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	kind, recipient := notification.KindComment, p.UserID
	if parentID != nil {
		parent, err := s.CommentRepository.FindByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != p.ID {
			return nil, apperr.BadInput("parent comment belongs to another post")
		}
		kind, recipient = notification.KindReply, parent.UserID
	}

	c := &commentEntity.Comment{
		ID:        uuid.Must(uuid.NewV7()),
		PostID:    p.ID,
		ParentID:  parentID,
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CommentRepository.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	a := activity.New(kind, userID, recipient, c.ID)
	if err := s.ActivityRepository.Create(ctx, a); err != nil {
		s.logger.Warn("could not enqueue comment activity", zap.String("commentID", c.ID.String()), zap.Error(err))
	}

	dto := commentPort.NewCommentDTO(c, 0)
	return &dto, nil
}

// ListPostComments pages through the top-level comments of a post, oldest first.
func (s *CommentService) ListPostComments(ctx context.Context, postID uuid.UUID, req pagination.Request) (pagination.Page[commentPort.CommentDTO], error) {
	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return pagination.Page[commentPort.CommentDTO]{}, err
	}
	rows, err := s.CommentRepository.ListTopLevel(ctx, postID, req)
	if err != nil {
		return pagination.Page[commentPort.CommentDTO]{}, fmt.Errorf("list comments: %w", err)
	}
	return s.annotate(ctx, rows, req.Limit)
}

// ListReplies pages through the direct replies of a comment, oldest first. Each reply
// carries its own direct reply count.
func (s *CommentService) ListReplies(ctx context.Context, commentID uuid.UUID, req pagination.Request) (pagination.Page[commentPort.CommentDTO], error) {
	if _, err := s.CommentRepository.FindByID(ctx, commentID); err != nil {
		return pagination.Page[commentPort.CommentDTO]{}, err
	}
	rows, err := s.CommentRepository.ListReplies(ctx, commentID, req)
	if err != nil {
		return pagination.Page[commentPort.CommentDTO]{}, fmt.Errorf("list replies: %w", err)
	}
	return s.annotate(ctx, rows, req.Limit)
}

func (s *CommentService) annotate(ctx context.Context, rows []*commentEntity.Comment, limit int) (pagination.Page[commentPort.CommentDTO], error) {
	page := pagination.Build(rows, limit, func(c *commentEntity.Comment) uuid.UUID { return c.ID })
	if len(page.Items) == 0 {
		return pagination.Map(page, func(c *commentEntity.Comment) commentPort.CommentDTO {
			return commentPort.NewCommentDTO(c, 0)
		}), nil
	}

	ids := make([]uuid.UUID, len(page.Items))
	for i, c := range page.Items {
		ids[i] = c.ID
	}
	counts, err := s.CommentRepository.CountReplies(ctx, ids)
	if err != nil {
		return pagination.Page[commentPort.CommentDTO]{}, fmt.Errorf("count replies: %w", err)
	}
	return pagination.Map(page, func(c *commentEntity.Comment) commentPort.CommentDTO {
		return commentPort.NewCommentDTO(c, counts[c.ID])
	}), nil
}
