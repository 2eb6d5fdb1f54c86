package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "flock/internal/adapters/database"
	"flock/internal/adapters/httpapi"
	"flock/internal/adapters/memory"
	redisadapter "flock/internal/adapters/redis"
	"flock/internal/config"
	commentapp "flock/internal/core/comment/service"
	draftapp "flock/internal/core/draft/service"
	followerapp "flock/internal/core/follower/service"
	notificationapp "flock/internal/core/notification/service"
	postapp "flock/internal/core/post/service"
	userapp "flock/internal/core/user/service"
	activityPort "flock/internal/ports/activity"
	commentPort "flock/internal/ports/comment"
	draftPort "flock/internal/ports/draft"
	followerPort "flock/internal/ports/follower"
	notificationPort "flock/internal/ports/notification"
	postPort "flock/internal/ports/post"
	"flock/internal/ports/realtime"
	userPort "flock/internal/ports/user"
	"flock/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// repositories آداپترهای خروجی، از MySQL یا حافظه
type repositories struct {
	users         userPort.UserRepository
	follows       followerPort.FollowerRepository
	posts         postPort.PostRepository
	likes         postPort.LikeRepository
	comments      commentPort.CommentRepository
	drafts        draftPort.DraftRepository
	notifications notificationPort.NotificationRepository
	activities    activityPort.ActivityRepository
}

func main() {
	seedUsers := flag.Int("seed", 0, "create this many demo users with follows and posts on startup")
	flag.Parse()

	cfg, err := config.Load() // بارگذاری تنظیمات از .env
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Env != config.EnvDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := openRepositories(cfg, logger)
	if err != nil {
		logger.Fatal("Error opening storage", zap.Error(err))
	}
	defer closeRepos()

	events, closeEvents, err := openEvents(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Error connecting to Redis", zap.Error(err))
	}
	defer closeEvents()

	jwtKey := []byte(cfg.JWTSecret)

	// یوزکیس/سرویس
	userSvc := userapp.NewUserService(repos.users, jwtKey, cfg.JWTTTL, logger)
	postSvc := postapp.NewPostService(repos.posts, repos.likes, repos.users, repos.activities, logger)
	followerSvc := followerapp.NewFollowerService(repos.follows, repos.users, repos.activities, logger)
	commentSvc := commentapp.NewCommentService(repos.comments, repos.posts, repos.activities, logger)
	draftSvc := draftapp.NewDraftService(repos.drafts, postSvc, logger)
	notificationSvc := notificationapp.NewNotificationService(repos.notifications, events, logger)
	worker := workers.NewNotificationWorker(repos.activities, notificationSvc, cfg.BatchSize, cfg.PollInterval, logger)

	r := httpapi.SetupRoutes(httpapi.Dependencies{ // تزریق یوزکیس به آداپتر ورودی
		Users:         userSvc,
		Posts:         postSvc,
		Followers:     followerSvc,
		Comments:      commentSvc,
		Drafts:        draftSvc,
		Notifications: notificationSvc,
		Events:        events,
		ParseToken:    func(token string) (uuid.UUID, error) { return userapp.ParseToken(jwtKey, token) },
		Logger:        logger,
	})

	if *seedUsers > 0 {
		seed(ctx, logger, *seedUsers, userSvc, postSvc, followerSvc)
	}

	// اجرای worker در پس‌زمینه
	go worker.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("App is running...", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openRepositories(cfg *config.Config, logger *zap.Logger) (*repositories, func(), error) {
	if cfg.Storage == config.StorageMemory {
		store := memory.New()
		logger.Warn("using in-memory storage; data is lost on exit")
		return &repositories{
			users:         store.Users(),
			follows:       store.Follows(),
			posts:         store.Posts(),
			likes:         store.Likes(),
			comments:      store.Comments(),
			drafts:        store.Drafts(),
			notifications: store.Notifications(),
			activities:    store.Activities(),
		}, func() { _ = store.Close() }, nil
	}

	db, err := config.OpenMySQL(cfg.DBDSN, logger)
	if err != nil {
		return nil, nil, err
	}
	// بستن اتصال دیتابیس
	closeDB := func() {
		if err := config.CloseDB(db); err != nil {
			logger.Error("Error closing database connection", zap.Error(err))
		}
	}
	return &repositories{
		users:         dbadapter.NewUserRepositoryDatabase(db),
		follows:       dbadapter.NewFollowerRepositoryDatabase(db),
		posts:         dbadapter.NewPostRepositoryDatabase(db),
		likes:         dbadapter.NewLikeRepositoryDatabase(db),
		comments:      dbadapter.NewCommentRepositoryDatabase(db),
		drafts:        dbadapter.NewDraftRepositoryDatabase(db),
		notifications: dbadapter.NewNotificationRepositoryDatabase(db),
		activities:    dbadapter.NewActivityRepositoryDatabase(db),
	}, closeDB, nil
}

type eventBus interface {
	realtime.Publisher
	realtime.Subscriber
}

// openEvents uses Redis pub/sub when REDIS_ADDR is set, otherwise an in-process broker.
func openEvents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (eventBus, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set; live updates stay within this instance")
		return memory.NewBroker(), func() {}, nil
	}
	client, err := config.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	// بستن اتصال به Redis
	return redisadapter.NewPubSubRedis(client, logger), func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}, nil
}
