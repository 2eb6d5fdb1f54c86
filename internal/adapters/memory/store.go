// Package memory is an in-process Entity Store. It backs the "memory" storage mode and the
// service tests, and keeps the same ordering and cursor rules as the SQL adapter.
package memory

import (
	"bytes"
	"sort"
	"sync"
	"time"

	"flock/internal/core/activity"
	"flock/internal/core/apperr"
	"flock/internal/core/comment"
	"flock/internal/core/draft"
	"flock/internal/core/follower"
	"flock/internal/core/like"
	"flock/internal/core/notification"
	"flock/internal/core/pagination"
	"flock/internal/core/post"
	"flock/internal/core/user"

	"github.com/gofrs/uuid"
)

type Store struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]*user.User
	follows       map[uuid.UUID]*follower.Follow
	posts         map[uuid.UUID]*post.Post
	likes         map[uuid.UUID]*like.Like
	comments      map[uuid.UUID]*comment.Comment
	drafts        map[uuid.UUID]*draft.Draft
	notifications map[uuid.UUID]*notification.Notification
	activities    map[uuid.UUID]*activity.Activity
}

func New() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.users = make(map[uuid.UUID]*user.User)
	s.follows = make(map[uuid.UUID]*follower.Follow)
	s.posts = make(map[uuid.UUID]*post.Post)
	s.likes = make(map[uuid.UUID]*like.Like)
	s.comments = make(map[uuid.UUID]*comment.Comment)
	s.drafts = make(map[uuid.UUID]*draft.Draft)
	s.notifications = make(map[uuid.UUID]*notification.Notification)
	s.activities = make(map[uuid.UUID]*activity.Activity)
}

func (s *Store) Users() *UserRepository                 { return &UserRepository{s} }
func (s *Store) Follows() *FollowerRepository           { return &FollowerRepository{s} }
func (s *Store) Posts() *PostRepository                 { return &PostRepository{s} }
func (s *Store) Likes() *LikeRepository                 { return &LikeRepository{s} }
func (s *Store) Comments() *CommentRepository           { return &CommentRepository{s} }
func (s *Store) Drafts() *DraftRepository               { return &DraftRepository{s} }
func (s *Store) Notifications() *NotificationRepository { return &NotificationRepository{s} }
func (s *Store) Activities() *ActivityRepository        { return &ActivityRepository{s} }

// Close drops every record.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

// sortKey orders rows by creation time, ties broken by id bytes. Byte order of a uuid is the
// same as the string order of its canonical form, which is what the SQL adapter compares.
type sortKey struct {
	at time.Time
	id uuid.UUID
}

func (a sortKey) less(b sortKey) bool {
	if !a.at.Equal(b.at) {
		return a.at.Before(b.at)
	}
	return bytes.Compare(a.id[:], b.id[:]) < 0
}

// window sorts rows and returns up to req.Fetch() rows after the cursor row. A cursor that is
// not part of rows is rejected.
func window[T any](rows []T, key func(T) sortKey, desc bool, req pagination.Request) ([]T, error) {
	sort.Slice(rows, func(i, j int) bool {
		if desc {
			return key(rows[j]).less(key(rows[i]))
		}
		return key(rows[i]).less(key(rows[j]))
	})

	start := 0
	if req.Cursor != nil {
		found := false
		for i, r := range rows {
			if key(r).id == *req.Cursor {
				start, found = i+1, true
				break
			}
		}
		if !found {
			return nil, apperr.BadInput("invalid cursor")
		}
	}

	end := start + req.Fetch()
	if end > len(rows) {
		end = len(rows)
	}
	out := make([]T, end-start)
	copy(out, rows[start:end])
	return out, nil
}

func (s *Store) userCopy(id uuid.UUID) user.User {
	if u, ok := s.users[id]; ok {
		return *u
	}
	return user.User{}
}
