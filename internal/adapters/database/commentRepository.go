package database

import (
	"context"

	"flock/internal/core/comment"
	"flock/internal/core/pagination"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) error {
	return repo.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	var c comment.Comment
	if err := repo.db.WithContext(ctx).Preload("User").Where("id = ?", id.String()).First(&c).Error; err != nil {
		return nil, translate(err, "comment")
	}
	return &c, nil
}

func (repo *CommentRepositoryDatabase) ListTopLevel(ctx context.Context, postID uuid.UUID, req pagination.Request) ([]*comment.Comment, error) {
	return repo.list(ctx, req, func(q *gorm.DB) *gorm.DB {
		return q.Where("comments.post_id = ? AND comments.parent_id IS NULL", postID.String())
	})
}

func (repo *CommentRepositoryDatabase) ListReplies(ctx context.Context, parentID uuid.UUID, req pagination.Request) ([]*comment.Comment, error) {
	return repo.list(ctx, req, func(q *gorm.DB) *gorm.DB {
		return q.Where("comments.parent_id = ?", parentID.String())
	})
}

func (repo *CommentRepositoryDatabase) list(ctx context.Context, req pagination.Request, scope func(*gorm.DB) *gorm.DB) ([]*comment.Comment, error) {
	q := paged{table: "comments", model: &comment.Comment{}, scope: scope}
	var comments []*comment.Comment
	err := q.find(repo.db.WithContext(ctx), req, &comments, "User")
	return comments, err
}

func (repo *CommentRepositoryDatabase) CountReplies(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []countRow
	if err := repo.db.WithContext(ctx).Model(&comment.Comment{}).
		Select("parent_id AS id, COUNT(*) AS n").
		Where("parent_id IN ?", idStrings(ids)).
		Group("parent_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r.N
	}
	return out, nil
}
