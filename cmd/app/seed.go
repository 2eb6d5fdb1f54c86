package main

import (
	"context"
	"fmt"

	followerapp "flock/internal/core/follower/service"
	postapp "flock/internal/core/post/service"
	userapp "flock/internal/core/user/service"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const postsPerUser = 10

// seed ساخت کاربران آزمایشی، فالو کردن همدیگر و ثبت پست
func seed(ctx context.Context, logger *zap.Logger, numUsers int, userSvc *userapp.UserService, postSvc *postapp.PostService, followerSvc *followerapp.FollowerService) {
	logger.Info("seeding demo data", zap.Int("users", numUsers))

	type seeded struct {
		id     uuid.UUID
		handle string
	}
	users := make([]seeded, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		handle := fmt.Sprintf("demo_user_%d", i)
		u, err := userSvc.RegisterUser(ctx, handle, fmt.Sprintf("Demo User %d", i), "password123")
		if err != nil {
			logger.Error("could not create demo user", zap.String("handle", handle), zap.Error(err))
			continue
		}
		users = append(users, seeded{id: uuid.FromStringOrNil(u.ID), handle: handle})
	}

	// همه کاربرا همدیگه رو فالو کنن
	follows := 0
	for _, a := range users {
		for _, b := range users {
			if a.id == b.id {
				continue
			}
			if err := followerSvc.FollowUser(ctx, a.id, b.handle); err != nil {
				logger.Error("could not follow", zap.String("follower", a.handle), zap.String("following", b.handle), zap.Error(err))
				continue
			}
			follows++
		}
	}

	posts := 0
	for _, u := range users {
		for p := 1; p <= postsPerUser; p++ {
			if _, err := postSvc.CreatePost(ctx, u.id, fmt.Sprintf("Post %d by %s", p, u.handle)); err != nil {
				logger.Error("could not create demo post", zap.String("handle", u.handle), zap.Error(err))
				continue
			}
			posts++
		}
	}

	logger.Info("demo data ready", zap.Int("users", len(users)), zap.Int("follows", follows), zap.Int("posts", posts))
}
