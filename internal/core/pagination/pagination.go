// Package pagination turns a (limit, cursor) request into a page of items and a next cursor.
//
// Stores load Request.Fetch() rows strictly after the cursor row in the collection order.
// Build then trims the extra row and decides whether another page exists. Pages are not
// isolated from concurrent inserts: a row written between two fetches can be skipped or
// repeated.
package pagination

import (
	"strconv"
	"strings"

	"flock/internal/core/apperr"

	"github.com/gofrs/uuid"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Request is a validated page request. A nil Cursor starts at the head of the collection.
type Request struct {
	Limit  int
	Cursor *uuid.UUID
}

// Fetch is the number of rows a store should load: one past Limit to detect a next page.
func (r Request) Fetch() int {
	return r.Limit + 1
}

// Page is the list shape returned by every list endpoint.
type Page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"nextCursor"`
}

// ParseLimit never fails: missing, non-numeric and non-positive input degrade to DefaultLimit.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// ParseCursor returns nil for an empty cursor and a bad input error for a malformed one.
func ParseCursor(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.FromString(raw)
	if err != nil {
		return nil, apperr.BadInput("invalid cursor")
	}
	return &id, nil
}

func NewRequest(limitRaw, cursorRaw string) (Request, error) {
	cursor, err := ParseCursor(cursorRaw)
	if err != nil {
		return Request{}, err
	}
	return Request{Limit: ParseLimit(limitRaw), Cursor: cursor}, nil
}

// Build assembles a page from rows loaded with Request.Fetch(). When rows exceed limit the
// page is cut to limit and NextCursor is the id of its last item.
func Build[T any](rows []T, limit int, id func(T) uuid.UUID) Page[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(rows) <= limit {
		items := make([]T, len(rows))
		copy(items, rows)
		return Page[T]{Items: items}
	}
	items := make([]T, limit)
	copy(items, rows[:limit])
	next := id(items[limit-1]).String()
	return Page[T]{Items: items, NextCursor: &next}
}

// Map converts page items while keeping the cursor.
func Map[T, U any](p Page[T], f func(T) U) Page[U] {
	out := Page[U]{Items: make([]U, len(p.Items)), NextCursor: p.NextCursor}
	for i, item := range p.Items {
		out.Items[i] = f(item)
	}
	return out
}
