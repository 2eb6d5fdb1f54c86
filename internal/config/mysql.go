package config

import (
	"flock/internal/core/activity"
	"flock/internal/core/comment"
	"flock/internal/core/draft"
	"flock/internal/core/follower"
	"flock/internal/core/like"
	"flock/internal/core/notification"
	"flock/internal/core/post"
	"flock/internal/core/user"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models is every table the app owns, in migration order.
func Models() []any {
	return []any{
		&user.User{},
		&post.Post{},
		&follower.Follow{},
		&like.Like{},
		&comment.Comment{},
		&draft.Draft{},
		&notification.Notification{},
		&activity.Activity{},
	}
}

// GormConfig translates driver errors so duplicate keys surface as gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// OpenMySQL اتصال به دیتابیس MySQL و اجرای مایگریشن‌ها
func OpenMySQL(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), GormConfig())
	if err != nil {
		return nil, err
	}
	log.Info("Database connected")

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed")
	return db, nil
}

func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
