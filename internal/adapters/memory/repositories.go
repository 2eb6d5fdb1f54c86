package memory

import (
	"context"
	"strings"
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
	postPort "flock/internal/ports/post"

	"github.com/gofrs/uuid"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Handle, u.Handle) {
			return apperr.Conflict("handle already taken")
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) FindByHandle(ctx context.Context, handle string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Handle, handle) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return apperr.NotFound("user")
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

type FollowerRepository struct{ s *Store }

func (r *FollowerRepository) Create(ctx context.Context, f *follower.Follow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.follows {
		if e.FollowerID == f.FollowerID && e.FollowingID == f.FollowingID {
			return apperr.Conflict("already following this user")
		}
	}
	cp := *f
	cp.Follower, cp.Following = user.User{}, user.User{}
	r.s.follows[f.ID] = &cp
	return nil
}

func (r *FollowerRepository) Delete(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, e := range r.s.follows {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			delete(r.s.follows, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *FollowerRepository) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range r.s.follows {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *FollowerRepository) ListFollowers(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*follower.Follow, error) {
	return r.list(req, func(f *follower.Follow) bool { return f.FollowingID == userID })
}

func (r *FollowerRepository) ListFollowing(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*follower.Follow, error) {
	return r.list(req, func(f *follower.Follow) bool { return f.FollowerID == userID })
}

func (r *FollowerRepository) list(req pagination.Request, match func(*follower.Follow) bool) ([]*follower.Follow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*follower.Follow
	for _, f := range r.s.follows {
		if match(f) {
			cp := *f
			cp.Follower = r.s.userCopy(f.FollowerID)
			cp.Following = r.s.userCopy(f.FollowingID)
			rows = append(rows, &cp)
		}
	}
	return window(rows, func(f *follower.Follow) sortKey { return sortKey{f.CreatedAt, f.ID} }, true, req)
}

func (r *FollowerRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := int64(len(r.s.follows))
	r.s.follows = make(map[uuid.UUID]*follower.Follow)
	return n, nil
}

type PostRepository struct{ s *Store }

func (r *PostRepository) Create(ctx context.Context, p *post.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *p
	cp.User = user.User{}
	r.s.posts[p.ID] = &cp
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, apperr.NotFound("post")
	}
	cp := *p
	cp.User = r.s.userCopy(p.UserID)
	return &cp, nil
}

func (r *PostRepository) ListByUser(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*post.Post, error) {
	return r.list(req, func(p *post.Post) bool { return p.UserID == userID })
}

func (r *PostRepository) ListFeed(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*post.Post, error) {
	r.s.mu.RLock()
	authors := map[uuid.UUID]bool{userID: true}
	for _, f := range r.s.follows {
		if f.FollowerID == userID {
			authors[f.FollowingID] = true
		}
	}
	r.s.mu.RUnlock()

	return r.list(req, func(p *post.Post) bool { return authors[p.UserID] })
}

func (r *PostRepository) list(req pagination.Request, match func(*post.Post) bool) ([]*post.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*post.Post
	for _, p := range r.s.posts {
		if match(p) {
			cp := *p
			cp.User = r.s.userCopy(p.UserID)
			rows = append(rows, &cp)
		}
	}
	return window(rows, func(p *post.Post) sortKey { return sortKey{p.CreatedAt, p.ID} }, true, req)
}

func (r *PostRepository) Stats(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]postPort.Stats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[uuid.UUID]postPort.Stats, len(ids))
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	for _, l := range r.s.likes {
		if wanted[l.PostID] {
			st := out[l.PostID]
			st.Likes++
			out[l.PostID] = st
		}
	}
	for _, c := range r.s.comments {
		if wanted[c.PostID] {
			st := out[c.PostID]
			st.Comments++
			out[c.PostID] = st
		}
	}
	return out, nil
}

type LikeRepository struct{ s *Store }

func (r *LikeRepository) Create(ctx context.Context, l *like.Like) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.likes {
		if e.UserID == l.UserID && e.PostID == l.PostID {
			return apperr.Conflict("post already liked")
		}
	}
	cp := *l
	r.s.likes[l.ID] = &cp
	return nil
}

func (r *LikeRepository) Delete(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, e := range r.s.likes {
		if e.UserID == userID && e.PostID == postID {
			delete(r.s.likes, id)
			return true, nil
		}
	}
	return false, nil
}

type CommentRepository struct{ s *Store }

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *c
	cp.User = user.User{}
	r.s.comments[c.ID] = &cp
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments[id]
	if !ok {
		return nil, apperr.NotFound("comment")
	}
	cp := *c
	cp.User = r.s.userCopy(c.UserID)
	return &cp, nil
}

func (r *CommentRepository) ListTopLevel(ctx context.Context, postID uuid.UUID, req pagination.Request) ([]*comment.Comment, error) {
	return r.list(req, func(c *comment.Comment) bool { return c.PostID == postID && c.ParentID == nil })
}

func (r *CommentRepository) ListReplies(ctx context.Context, parentID uuid.UUID, req pagination.Request) ([]*comment.Comment, error) {
	return r.list(req, func(c *comment.Comment) bool { return c.ParentID != nil && *c.ParentID == parentID })
}

func (r *CommentRepository) list(req pagination.Request, match func(*comment.Comment) bool) ([]*comment.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*comment.Comment
	for _, c := range r.s.comments {
		if match(c) {
			cp := *c
			cp.User = r.s.userCopy(c.UserID)
			rows = append(rows, &cp)
		}
	}
	return window(rows, func(c *comment.Comment) sortKey { return sortKey{c.CreatedAt, c.ID} }, false, req)
}

func (r *CommentRepository) CountReplies(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make(map[uuid.UUID]int64)
	for _, c := range r.s.comments {
		if c.ParentID != nil && wanted[*c.ParentID] {
			out[*c.ParentID]++
		}
	}
	return out, nil
}

type DraftRepository struct{ s *Store }

func (r *DraftRepository) Create(ctx context.Context, d *draft.Draft) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *d
	r.s.drafts[d.ID] = &cp
	return nil
}

func (r *DraftRepository) FindByID(ctx context.Context, id uuid.UUID) (*draft.Draft, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.drafts[id]
	if !ok {
		return nil, apperr.NotFound("draft")
	}
	cp := *d
	return &cp, nil
}

func (r *DraftRepository) Update(ctx context.Context, d *draft.Draft) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.drafts[d.ID]; !ok {
		return apperr.NotFound("draft")
	}
	cp := *d
	r.s.drafts[d.ID] = &cp
	return nil
}

func (r *DraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.drafts[id]; !ok {
		return apperr.NotFound("draft")
	}
	delete(r.s.drafts, id)
	return nil
}

func (r *DraftRepository) ListByUser(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*draft.Draft, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*draft.Draft
	for _, d := range r.s.drafts {
		if d.UserID == userID {
			cp := *d
			rows = append(rows, &cp)
		}
	}
	return window(rows, func(d *draft.Draft) sortKey { return sortKey{d.CreatedAt, d.ID} }, true, req)
}

type NotificationRepository struct{ s *Store }

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *n
	cp.Actor = user.User{}
	r.s.notifications[n.ID] = &cp
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*notification.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*notification.Notification
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			cp := *n
			cp.Actor = r.s.userCopy(n.ActorID)
			rows = append(rows, &cp)
		}
	}
	return window(rows, func(n *notification.Notification) sortKey { return sortKey{n.CreatedAt, n.ID} }, true, req)
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, row := range r.s.notifications {
		if row.UserID == userID && !row.Read {
			row.Read = true
			n++
		}
	}
	return n, nil
}

func (r *NotificationRepository) MarkReadByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, id := range ids {
		row, ok := r.s.notifications[id]
		if ok && row.UserID == userID && !row.Read {
			row.Read = true
			n++
		}
	}
	return n, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, row := range r.s.notifications {
		if row.UserID == userID && !row.Read {
			n++
		}
	}
	return n, nil
}

type ActivityRepository struct{ s *Store }

func (r *ActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *a
	r.s.activities[a.ID] = &cp
	return nil
}

func (r *ActivityRepository) GetPending(ctx context.Context, limit int) ([]*activity.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*activity.Activity
	for _, a := range r.s.activities {
		if a.Status == activity.StatusPending {
			cp := *a
			rows = append(rows, &cp)
		}
	}
	return window(rows, func(a *activity.Activity) sortKey { return sortKey{a.CreatedAt, a.ID} }, false,
		pagination.Request{Limit: limit - 1})
}

func (r *ActivityRepository) MarkDone(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.activities[id]
	if !ok {
		return apperr.NotFound("activity")
	}
	now := time.Now().UTC()
	a.Status = activity.StatusDone
	a.ProcessedAt = &now
	return nil
}
