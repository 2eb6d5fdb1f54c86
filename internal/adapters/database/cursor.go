package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"flock/internal/core/apperr"
	"flock/internal/core/pagination"

	"gorm.io/gorm"
)

// paged is a scoped query read in (created_at, id) order, starting after the cursor row.
type paged struct {
	table string
	model any
	scope func(*gorm.DB) *gorm.DB
	desc  bool
}

func (p paged) find(db *gorm.DB, req pagination.Request, dest any, preloads ...string) error {
	q := db.Model(p.model).Scopes(p.scope)

	if req.Cursor != nil {
		var at struct{ CreatedAt time.Time }
		err := db.Model(p.model).Scopes(p.scope).
			Select(p.table+".created_at").
			Where(p.table+".id = ?", req.Cursor.String()).
			Take(&at).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.BadInput("invalid cursor")
		}
		if err != nil {
			return err
		}

		cmp := ">"
		if p.desc {
			cmp = "<"
		}
		q = q.Where(
			fmt.Sprintf("(%[1]s.created_at %[2]s ? OR (%[1]s.created_at = ? AND %[1]s.id %[2]s ?))", p.table, cmp),
			at.CreatedAt, at.CreatedAt, req.Cursor.String(),
		)
	}

	dir := "ASC"
	if p.desc {
		dir = "DESC"
	}
	q = q.Order(p.table + ".created_at " + dir).Order(p.table + ".id " + dir).Limit(req.Fetch())
	for _, rel := range preloads {
		q = q.Preload(rel)
	}
	return q.Find(dest).Error
}

// translate maps driver errors onto the application's error kinds.
func translate(err error, subject string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(subject)
	case duplicate(err):
		return apperr.Conflict(subject + " already exists")
	}
	return err
}

// duplicate reports a unique key violation, translated or not.
func duplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
