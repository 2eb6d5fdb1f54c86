package httpapi

import (
	"context"
	"net/http"

	"flock/internal/adapters/httpapi/middleware"
	notificationapp "flock/internal/core/notification/service"
	"flock/internal/core/pagination"
	userEntity "flock/internal/core/user"
	commentPort "flock/internal/ports/comment"
	draftPort "flock/internal/ports/draft"
	followerPort "flock/internal/ports/follower"
	notificationPort "flock/internal/ports/notification"
	postPort "flock/internal/ports/post"
	"flock/internal/ports/realtime"
	userPort "flock/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	LoginUser(ctx context.Context, handle, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, handle, name, password string) (*userPort.UserDTO, error)
	ResolveHandle(ctx context.Context, handle string) (*userEntity.User, error)
	GetProfile(ctx context.Context, handle string) (*userPort.UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, avatarURL *string) (*userPort.UserDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID uuid.UUID, content string) (*postPort.PostDTO, error)
	GetPost(ctx context.Context, id uuid.UUID) (*postPort.PostDTO, error)
	ListUserPosts(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[postPort.PostDTO], error)
	Feed(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[postPort.PostDTO], error)
	LikePost(ctx context.Context, userID, postID uuid.UUID) error
	UnlikePost(ctx context.Context, userID, postID uuid.UUID) error
}

type FollowerUseCase interface {
	FollowUser(ctx context.Context, followerID uuid.UUID, handle string) error
	UnfollowUser(ctx context.Context, followerID uuid.UUID, handle string) error
	ListFollowers(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[followerPort.FollowDTO], error)
	ListFollowing(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[followerPort.FollowDTO], error)
}

type CommentUseCase interface {
	CreateComment(ctx context.Context, userID, postID uuid.UUID, parentID *uuid.UUID, body string) (*commentPort.CommentDTO, error)
	ListPostComments(ctx context.Context, postID uuid.UUID, req pagination.Request) (pagination.Page[commentPort.CommentDTO], error)
	ListReplies(ctx context.Context, commentID uuid.UUID, req pagination.Request) (pagination.Page[commentPort.CommentDTO], error)
}

type DraftUseCase interface {
	CreateDraft(ctx context.Context, userID uuid.UUID, content string) (*draftPort.DraftDTO, error)
	UpdateDraft(ctx context.Context, userID, draftID uuid.UUID, content string) (*draftPort.DraftDTO, error)
	ListDrafts(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[draftPort.DraftDTO], error)
	DeleteDraft(ctx context.Context, userID, draftID uuid.UUID) error
	PublishDraft(ctx context.Context, userID, draftID uuid.UUID) (*postPort.PostDTO, error)
}

type NotificationUseCase interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[notificationPort.NotificationDTO], error)
	MarkRead(ctx context.Context, userID uuid.UUID, sel notificationapp.Selection) error
	CountUnread(ctx context.Context, userID *uuid.UUID) int64
}

// Dependencies is everything the router needs; use cases are injected from cmd.
type Dependencies struct {
	Users         UserUseCase
	Posts         PostUseCase
	Followers     FollowerUseCase
	Comments      CommentUseCase
	Drafts        DraftUseCase
	Notifications NotificationUseCase
	Events        realtime.Subscriber
	ParseToken    middleware.TokenParser
	Logger        *zap.Logger
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(d Dependencies) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(d.Logger))

	auth := middleware.JWTAuthMiddleware(d.ParseToken)
	optional := middleware.OptionalAuth(d.ParseToken)

	uc := NewUserController(d.Users)
	pc := NewPostController(d.Posts, d.Users)
	fc := NewFollowerController(d.Followers, d.Users)
	cc := NewCommentController(d.Comments)
	dc := NewDraftController(d.Drafts)
	nc := NewNotificationController(d.Notifications, d.Events, d.Logger)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// مسیرهای ثبت‌نام و ورود بدون JWT Middleware
	r.POST("/register", uc.RegisterUser)
	r.POST("/login", uc.LoginUser)
	r.GET("/users/:handle", uc.GetProfile)
	r.PATCH("/me", auth, uc.UpdateProfile)

	// مسیرهای دنبال کردن و دریافت دنبال‌کنندگان
	r.POST("/follow", auth, fc.FollowUser)
	r.POST("/unfollow", auth, fc.UnfollowUser)
	r.GET("/followers", auth, fc.ListMyFollowers)
	r.GET("/following", auth, fc.ListMyFollowing)
	r.GET("/users/:handle/followers", fc.ListFollowers)
	r.GET("/users/:handle/following", fc.ListFollowing)

	r.POST("/posts", auth, pc.CreatePost)
	r.GET("/posts/:id", pc.GetPost)
	r.GET("/users/:handle/posts", pc.ListUserPosts)
	r.GET("/feed", auth, pc.Feed)
	r.POST("/posts/:id/like", auth, pc.LikePost)
	r.DELETE("/posts/:id/like", auth, pc.UnlikePost)

	r.POST("/posts/:id/comments", auth, cc.CreateComment)
	r.GET("/posts/:id/comments", cc.ListPostComments)
	r.GET("/comments/:id/replies", cc.ListReplies)
	r.GET("/replies", cc.ListRepliesByQuery)

	drafts := r.Group("/drafts", auth)
	drafts.POST("", dc.CreateDraft)
	drafts.GET("", dc.ListDrafts)
	drafts.PATCH("/:id", dc.UpdateDraft)
	drafts.DELETE("/:id", dc.DeleteDraft)
	drafts.POST("/:id/publish", dc.PublishDraft)

	r.GET("/notifications", auth, nc.ListNotifications)
	r.POST("/notifications/read", auth, nc.MarkRead)
	r.GET("/notifications/unread", optional, nc.CountUnread)
	r.GET("/notifications/stream", auth, nc.Stream)
	return r
}
