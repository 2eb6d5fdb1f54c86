package database

import (
	"context"

	"flock/internal/core/comment"
	"flock/internal/core/follower"
	"flock/internal/core/like"
	"flock/internal/core/pagination"
	"flock/internal/core/post"
	postPort "flock/internal/ports/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase پیاده‌سازی PostRepository برای دیتابیس
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase سازنده PostRepositoryDatabase
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) error {
	return repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Preload("User").Where("id = ?", id.String()).First(&p).Error; err != nil {
		return nil, translate(err, "post")
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) ListByUser(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*post.Post, error) {
	q := paged{
		table: "posts",
		model: &post.Post{},
		scope: func(q *gorm.DB) *gorm.DB { return q.Where("posts.user_id = ?", userID.String()) },
		desc:  true,
	}
	var posts []*post.Post
	err := q.find(repo.db.WithContext(ctx), req, &posts, "User")
	return posts, err
}

func (repo *PostRepositoryDatabase) ListFeed(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*post.Post, error) {
	db := repo.db.WithContext(ctx)
	following := db.Model(&follower.Follow{}).Select("following_id").Where("follower_id = ?", userID.String())

	q := paged{
		table: "posts",
		model: &post.Post{},
		scope: func(q *gorm.DB) *gorm.DB {
			return q.Where("posts.user_id = ? OR posts.user_id IN (?)", userID.String(), following)
		},
		desc: true,
	}
	var posts []*post.Post
	err := q.find(db, req, &posts, "User")
	return posts, err
}

type countRow struct {
	ID uuid.UUID
	N  int64
}

// Stats counts likes and comments for each post id in two grouped queries.
func (repo *PostRepositoryDatabase) Stats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]postPort.Stats, error) {
	out := make(map[uuid.UUID]postPort.Stats, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := idStrings(ids)
	db := repo.db.WithContext(ctx)

	var likes, comments []countRow
	if err := db.Model(&like.Like{}).Select("post_id AS id, COUNT(*) AS n").
		Where("post_id IN ?", keys).Group("post_id").Scan(&likes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&comment.Comment{}).Select("post_id AS id, COUNT(*) AS n").
		Where("post_id IN ?", keys).Group("post_id").Scan(&comments).Error; err != nil {
		return nil, err
	}

	for _, r := range likes {
		st := out[r.ID]
		st.Likes = r.N
		out[r.ID] = st
	}
	for _, r := range comments {
		st := out[r.ID]
		st.Comments = r.N
		out[r.ID] = st
	}
	return out, nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
