package postapp

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"flock/internal/core/activity"
	"flock/internal/core/apperr"
	likeEntity "flock/internal/core/like"
	"flock/internal/core/notification"
	"flock/internal/core/pagination"
	postEntity "flock/internal/core/post"
	activityPort "flock/internal/ports/activity"
	postPort "flock/internal/ports/post"
	userPort "flock/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type PostService struct {
	PostRepository     postPort.PostRepository
	LikeRepository     postPort.LikeRepository
	UserRepository     userPort.UserRepository
	ActivityRepository activityPort.ActivityRepository
	logger             *zap.Logger
}

func NewPostService(
	postRepo postPort.PostRepository,
	likeRepo postPort.LikeRepository,
	userRepo userPort.UserRepository,
	activityRepo activityPort.ActivityRepository,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository:     postRepo,
		LikeRepository:     likeRepo,
		UserRepository:     userRepo,
		ActivityRepository: activityRepo,
		logger:             logger,
	}
}

// CreatePost ایجاد یک پست جدید
func (s *PostService) CreatePost(ctx context.Context, userID uuid.UUID, content string) (*postPort.PostDTO, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.BadInput("content must not be empty")
	}
	if utf8.RuneCountInString(content) > postEntity.MaxContentLength {
		return nil, apperr.BadInput(fmt.Sprintf("content exceeds %d characters", postEntity.MaxContentLength))
	}

	author, err := s.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &postEntity.Post{
		ID:        uuid.Must(uuid.NewV7()),
		Content:   content,
		UserID:    author.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.PostRepository.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	p.User = *author

	s.logger.Info("post created", zap.String("postID", p.ID.String()), zap.String("userID", userID.String()))
	dto := postPort.NewPostDTO(p, postPort.Stats{})
	return &dto, nil
}

func (s *PostService) GetPost(ctx context.Context, id uuid.UUID) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.PostRepository.Stats(ctx, []uuid.UUID{p.ID})
	if err != nil {
		return nil, fmt.Errorf("post stats: %w", err)
	}
	dto := postPort.NewPostDTO(p, stats[p.ID])
	return &dto, nil
}

func (s *PostService) ListUserPosts(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[postPort.PostDTO], error) {
	if _, err := s.UserRepository.FindByID(ctx, userID); err != nil {
		return pagination.Page[postPort.PostDTO]{}, err
	}
	rows, err := s.PostRepository.ListByUser(ctx, userID, req)
	if err != nil {
		return pagination.Page[postPort.PostDTO]{}, fmt.Errorf("list posts: %w", err)
	}
	return s.page(ctx, rows, req.Limit)
}

// Feed pages through posts by userID and the users they follow, newest first.
func (s *PostService) Feed(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[postPort.PostDTO], error) {
	rows, err := s.PostRepository.ListFeed(ctx, userID, req)
	if err != nil {
		return pagination.Page[postPort.PostDTO]{}, fmt.Errorf("list feed: %w", err)
	}
	return s.page(ctx, rows, req.Limit)
}

func (s *PostService) LikePost(ctx context.Context, userID, postID uuid.UUID) error {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	l := &likeEntity.Like{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		PostID:    p.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.LikeRepository.Create(ctx, l); err != nil {
		return err
	}

	a := activity.New(notification.KindLike, userID, p.UserID, p.ID)
	if err := s.ActivityRepository.Create(ctx, a); err != nil {
		s.logger.Warn("could not enqueue like activity", zap.String("postID", p.ID.String()), zap.Error(err))
	}
	return nil
}

func (s *PostService) UnlikePost(ctx context.Context, userID, postID uuid.UUID) error {
	removed, err := s.LikeRepository.Delete(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("like")
	}
	return nil
}

func (s *PostService) page(ctx context.Context, rows []*postEntity.Post, limit int) (pagination.Page[postPort.PostDTO], error) {
	page := pagination.Build(rows, limit, func(p *postEntity.Post) uuid.UUID { return p.ID })

	ids := make([]uuid.UUID, len(page.Items))
	for i, p := range page.Items {
		ids[i] = p.ID
	}
	stats, err := s.PostRepository.Stats(ctx, ids)
	if err != nil {
		return pagination.Page[postPort.PostDTO]{}, fmt.Errorf("post stats: %w", err)
	}
	return pagination.Map(page, func(p *postEntity.Post) postPort.PostDTO {
		return postPort.NewPostDTO(p, stats[p.ID])
	}), nil
}
