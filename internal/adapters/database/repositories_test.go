package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"flock/internal/config"
	"flock/internal/core/activity"
	"flock/internal/core/apperr"
	"flock/internal/core/comment"
	"flock/internal/core/follower"
	"flock/internal/core/like"
	"flock/internal/core/notification"
	"flock/internal/core/pagination"
	"flock/internal/core/post"
	"flock/internal/core/user"

	"github.com/glebarez/sqlite"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), config.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(config.Models()...))
	return db
}

func mkUser(t *testing.T, repo *UserRepositoryDatabase, handle string) *user.User {
	t.Helper()
	u := &user.User{ID: uuid.Must(uuid.NewV7()), Handle: handle, Name: handle, Password: "x", CreatedAt: base, UpdatedAt: base}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepositoryDatabase(openDB(t))
	u := mkUser(t, repo, "alice")

	err := repo.Create(ctx, &user.User{ID: uuid.Must(uuid.NewV7()), Handle: "alice", Name: "dup", Password: "x"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	got, err := repo.FindByHandle(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.FindByID(ctx, uuid.Must(uuid.NewV7()))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	got.Name = "Alice"
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}

func TestFollowerRepositoryOrderAndCursor(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	users := NewUserRepositoryDatabase(db)
	repo := NewFollowerRepositoryDatabase(db)
	target := mkUser(t, users, "target")

	var edges []uuid.UUID
	for i := 0; i < 5; i++ {
		fan := mkUser(t, users, fmt.Sprintf("fan_%d", i))
		f := &follower.Follow{ID: uuid.Must(uuid.NewV7()), FollowerID: fan.ID, FollowingID: target.ID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.Create(ctx, f))
		edges = append(edges, f.ID)
	}

	dup := &follower.Follow{ID: uuid.Must(uuid.NewV7()), FollowerID: mustFind(t, users, "fan_0").ID, FollowingID: target.ID, CreatedAt: base}
	assert.True(t, errors.Is(repo.Create(ctx, dup), apperr.ErrConflict))

	rows, err := repo.ListFollowers(ctx, target.ID, pagination.Request{Limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, edges[4], rows[0].ID)
	assert.Equal(t, "fan_4", rows[0].Follower.Handle)

	cursor := rows[1].ID
	rows, err = repo.ListFollowers(ctx, target.ID, pagination.Request{Limit: 2, Cursor: &cursor})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []uuid.UUID{edges[2], edges[1], edges[0]}, []uuid.UUID{rows[0].ID, rows[1].ID, rows[2].ID})

	following, err := repo.ListFollowing(ctx, mustFind(t, users, "fan_3").ID, pagination.Request{Limit: 20})
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "target", following[0].Following.Handle)

	foreign := edges[0]
	_, err = repo.ListFollowing(ctx, target.ID, pagination.Request{Limit: 20, Cursor: &foreign})
	assert.True(t, errors.Is(err, apperr.ErrBadInput), "cursor from another list")

	removed, err := repo.Delete(ctx, mustFind(t, users, "fan_0").ID, target.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func mustFind(t *testing.T, repo *UserRepositoryDatabase, handle string) *user.User {
	t.Helper()
	u, err := repo.FindByHandle(context.Background(), handle)
	require.NoError(t, err)
	return u
}

func TestPostFeedAndStats(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	users := NewUserRepositoryDatabase(db)
	posts := NewPostRepositoryDatabase(db)
	likes := NewLikeRepositoryDatabase(db)
	comments := NewCommentRepositoryDatabase(db)
	follows := NewFollowerRepositoryDatabase(db)

	alice, bob, carol := mkUser(t, users, "alice"), mkUser(t, users, "bob"), mkUser(t, users, "carol")
	require.NoError(t, follows.Create(ctx, &follower.Follow{ID: uuid.Must(uuid.NewV7()), FollowerID: alice.ID, FollowingID: bob.ID, CreatedAt: base}))

	var ids []uuid.UUID
	for i, author := range []*user.User{alice, bob, carol} {
		p := &post.Post{ID: uuid.Must(uuid.NewV7()), UserID: author.ID, Content: "p", CreatedAt: base.Add(time.Duration(i) * time.Hour), UpdatedAt: base}
		require.NoError(t, posts.Create(ctx, p))
		ids = append(ids, p.ID)
	}

	feed, err := posts.ListFeed(ctx, alice.ID, pagination.Request{Limit: 20})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, ids[1], feed[0].ID)
	assert.Equal(t, "bob", feed[0].User.Handle)
	assert.Equal(t, ids[0], feed[1].ID)

	require.NoError(t, likes.Create(ctx, &like.Like{ID: uuid.Must(uuid.NewV7()), UserID: bob.ID, PostID: ids[0], CreatedAt: base}))
	err = likes.Create(ctx, &like.Like{ID: uuid.Must(uuid.NewV7()), UserID: bob.ID, PostID: ids[0], CreatedAt: base})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	require.NoError(t, comments.Create(ctx, &comment.Comment{ID: uuid.Must(uuid.NewV7()), PostID: ids[0], UserID: carol.ID, Body: "hi", CreatedAt: base}))

	stats, err := posts.Stats(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats[ids[0]].Likes)
	assert.Equal(t, int64(1), stats[ids[0]].Comments)
	assert.Zero(t, stats[ids[2]].Likes)
}

func TestCommentRepliesAscendingWithCounts(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	users := NewUserRepositoryDatabase(db)
	repo := NewCommentRepositoryDatabase(db)
	u := mkUser(t, users, "writer")
	postID := uuid.Must(uuid.NewV7())

	root := &comment.Comment{ID: uuid.Must(uuid.NewV7()), PostID: postID, UserID: u.ID, Body: "root", CreatedAt: base}
	require.NoError(t, repo.Create(ctx, root))
	var replies []uuid.UUID
	for i := 3; i >= 1; i-- {
		c := &comment.Comment{ID: uuid.Must(uuid.NewV7()), PostID: postID, ParentID: &root.ID, UserID: u.ID, Body: "r", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.Create(ctx, c))
		replies = append([]uuid.UUID{c.ID}, replies...)
	}

	rows, err := repo.ListReplies(ctx, root.ID, pagination.Request{Limit: 20})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i := range rows {
		assert.Equal(t, replies[i], rows[i].ID)
	}

	top, err := repo.ListTopLevel(ctx, postID, pagination.Request{Limit: 20})
	require.NoError(t, err)
	require.Len(t, top, 1)

	counts, err := repo.CountReplies(ctx, []uuid.UUID{root.ID, replies[0]})
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[root.ID])
	assert.Zero(t, counts[replies[0]])
}

func TestNotificationReadState(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	users := NewUserRepositoryDatabase(db)
	repo := NewNotificationRepositoryDatabase(db)
	owner, other := mkUser(t, users, "owner"), mkUser(t, users, "other")

	mk := func(to, from *user.User, i int) uuid.UUID {
		n := &notification.Notification{ID: uuid.Must(uuid.NewV7()), UserID: to.ID, ActorID: from.ID, Kind: notification.KindLike, SubjectID: uuid.Must(uuid.NewV7()), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.Create(ctx, n))
		return n.ID
	}
	a, b := mk(owner, other, 1), mk(owner, other, 2)
	foreign := mk(other, owner, 3)

	n, err := repo.MarkReadByIDs(ctx, owner.ID, []uuid.UUID{a, foreign})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	unread, err := repo.CountUnread(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	n, err = repo.MarkAllRead(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rows, err := repo.ListByUser(ctx, owner.ID, pagination.Request{Limit: 20})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, b, rows[0].ID)
	assert.Equal(t, "other", rows[0].Actor.Handle)
	for _, r := range rows {
		assert.True(t, r.Read)
	}
}

func TestActivityOutbox(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepositoryDatabase(openDB(t))

	first := activity.New(notification.KindFollow, uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()))
	first.CreatedAt = base
	second := activity.New(notification.KindLike, uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()))
	second.CreatedAt = base.Add(time.Minute)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	pending, err := repo.GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)

	require.NoError(t, repo.MarkDone(ctx, first.ID))
	pending, err = repo.GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}
