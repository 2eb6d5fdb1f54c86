package followerapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flock/internal/core/activity"
	"flock/internal/core/apperr"
	followerEntity "flock/internal/core/follower"
	"flock/internal/core/notification"
	"flock/internal/core/pagination"
	activityPort "flock/internal/ports/activity"
	followerPort "flock/internal/ports/follower"
	userPort "flock/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	UserRepository     userPort.UserRepository
	ActivityRepository activityPort.ActivityRepository
	logger             *zap.Logger
}

func NewFollowerService(
	repo followerPort.FollowerRepository,
	userRepo userPort.UserRepository,
	activityRepo activityPort.ActivityRepository,
	logger *zap.Logger,
) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		UserRepository:     userRepo,
		ActivityRepository: activityRepo,
		logger:             logger,
	}
}

func (s *FollowerService) FollowUser(ctx context.Context, followerID uuid.UUID, handle string) error {
	target, err := s.UserRepository.FindByHandle(ctx, strings.TrimSpace(handle))
	if err != nil {
		return err
	}
	if target.ID == followerID {
		s.logger.Warn("cannot follow yourself", zap.String("userID", followerID.String()))
		return apperr.BadInput("cannot follow yourself")
	}

	f := &followerEntity.Follow{
		ID:          uuid.Must(uuid.NewV7()),
		FollowerID:  followerID,
		FollowingID: target.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.FollowerRepository.Create(ctx, f); err != nil {
		return err
	}

	a := activity.New(notification.KindFollow, followerID, target.ID, f.ID)
	if err := s.ActivityRepository.Create(ctx, a); err != nil {
		s.logger.Warn("could not enqueue follow activity", zap.String("followID", f.ID.String()), zap.Error(err))
	}
	return nil
}

func (s *FollowerService) UnfollowUser(ctx context.Context, followerID uuid.UUID, handle string) error {
	target, err := s.UserRepository.FindByHandle(ctx, strings.TrimSpace(handle))
	if err != nil {
		return err
	}
	removed, err := s.FollowerRepository.Delete(ctx, followerID, target.ID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("follow")
	}
	return nil
}

func (s *FollowerService) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return s.FollowerRepository.Exists(ctx, followerID, followingID)
}

// ListFollowers pages through the users following userID, most recent edge first.
func (s *FollowerService) ListFollowers(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[followerPort.FollowDTO], error) {
	if _, err := s.UserRepository.FindByID(ctx, userID); err != nil {
		return pagination.Page[followerPort.FollowDTO]{}, err
	}
	rows, err := s.FollowerRepository.ListFollowers(ctx, userID, req)
	if err != nil {
		return pagination.Page[followerPort.FollowDTO]{}, fmt.Errorf("list followers: %w", err)
	}
	page := pagination.Build(rows, req.Limit, followID)
	return pagination.Map(page, func(f *followerEntity.Follow) followerPort.FollowDTO {
		return followerPort.FollowDTO{ID: f.ID.String(), User: userPort.NewUserDTO(&f.Follower), FollowedAt: f.CreatedAt}
	}), nil
}

// ListFollowing pages through the users userID follows, most recent edge first.
func (s *FollowerService) ListFollowing(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[followerPort.FollowDTO], error) {
	if _, err := s.UserRepository.FindByID(ctx, userID); err != nil {
		return pagination.Page[followerPort.FollowDTO]{}, err
	}
	rows, err := s.FollowerRepository.ListFollowing(ctx, userID, req)
	if err != nil {
		return pagination.Page[followerPort.FollowDTO]{}, fmt.Errorf("list following: %w", err)
	}
	page := pagination.Build(rows, req.Limit, followID)
	return pagination.Map(page, func(f *followerEntity.Follow) followerPort.FollowDTO {
		return followerPort.FollowDTO{ID: f.ID.String(), User: userPort.NewUserDTO(&f.Following), FollowedAt: f.CreatedAt}
	}), nil
}

// ResetAll removes every follow edge. It is destructive and only reachable from the admin
// command.
func (s *FollowerService) ResetAll(ctx context.Context) (int64, error) {
	n, err := s.FollowerRepository.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset follows: %w", err)
	}
	s.logger.Warn("all follow edges removed", zap.Int64("count", n))
	return n, nil
}

func followID(f *followerEntity.Follow) uuid.UUID { return f.ID }
