package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flock/internal/adapters/memory"
	commentapp "flock/internal/core/comment/service"
	draftapp "flock/internal/core/draft/service"
	followerapp "flock/internal/core/follower/service"
	notificationapp "flock/internal/core/notification/service"
	postapp "flock/internal/core/post/service"
	userapp "flock/internal/core/user/service"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var jwtKey = []byte("router-test")

type testApp struct {
	t             *testing.T
	router        *gin.Engine
	store         *memory.Store
	notifications *notificationapp.NotificationService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	broker := memory.NewBroker()
	logger := zap.NewNop()

	users := userapp.NewUserService(store.Users(), jwtKey, time.Hour, logger)
	posts := postapp.NewPostService(store.Posts(), store.Likes(), store.Users(), store.Activities(), logger)
	notifications := notificationapp.NewNotificationService(store.Notifications(), broker, logger)

	r := SetupRoutes(Dependencies{
		Users:         users,
		Posts:         posts,
		Followers:     followerapp.NewFollowerService(store.Follows(), store.Users(), store.Activities(), logger),
		Comments:      commentapp.NewCommentService(store.Comments(), store.Posts(), store.Activities(), logger),
		Drafts:        draftapp.NewDraftService(store.Drafts(), posts, logger),
		Notifications: notifications,
		Events:        broker,
		ParseToken:    func(token string) (uuid.UUID, error) { return userapp.ParseToken(jwtKey, token) },
		Logger:        logger,
	})
	return &testApp{t: t, router: r, store: store, notifications: notifications}
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// signup registers a user and returns its id and token.
func (a *testApp) signup(handle string) (string, string) {
	a.t.Helper()
	w := a.do(http.MethodPost, "/register", "", gin.H{"handle": handle, "name": handle, "password": "password123"})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var u struct {
		ID string `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &u))

	w = a.do(http.MethodPost, "/login", "", gin.H{"handle": handle, "password": "password123"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &res))
	return u.ID, res.Token
}

type pageBody struct {
	Items      []map[string]any `json:"items"`
	NextCursor *string          `json:"nextCursor"`
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) pageBody {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p pageBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestFollowersListing(t *testing.T) {
	app := newTestApp(t)
	_, targetToken := app.signup("target")

	for i := 0; i < 25; i++ {
		_, token := app.signup(fmt.Sprintf("fan_%02d", i))
		w := app.do(http.MethodPost, "/follow", token, gin.H{"handle": "target"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	first := decodePage(t, app.do(http.MethodGet, "/users/target/followers?limit=oops", "", nil))
	assert.Len(t, first.Items, 20)
	require.NotNil(t, first.NextCursor)

	second := decodePage(t, app.do(http.MethodGet, "/users/target/followers?cursor="+*first.NextCursor, "", nil))
	assert.Len(t, second.Items, 5)
	assert.Nil(t, second.NextCursor)

	seen := map[string]bool{}
	for _, it := range append(first.Items, second.Items...) {
		u := it["user"].(map[string]any)
		seen[u["userId"].(string)] = true
	}
	assert.Len(t, seen, 25)

	mine := decodePage(t, app.do(http.MethodGet, "/followers?limit=100", targetToken, nil))
	assert.Len(t, mine.Items, 25)

	w := app.do(http.MethodGet, "/users/nobody/followers", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, errorOf(t, w))

	w = app.do(http.MethodGet, "/users/target/followers?cursor=garbage", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowErrors(t *testing.T) {
	app := newTestApp(t)
	_, token := app.signup("alice")
	app.signup("bob")

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodPost, "/follow", "", gin.H{"handle": "bob"}).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/follow", token, gin.H{"handle": "alice"}).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/follow", token, gin.H{"handle": "no spaces!"}).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodPost, "/follow", token, gin.H{"handle": "ghost"}).Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodPost, "/follow", token, gin.H{"handle": "bob"}).Code)
	assert.Equal(t, http.StatusConflict, app.do(http.MethodPost, "/follow", token, gin.H{"handle": "bob"}).Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodPost, "/unfollow", token, gin.H{"handle": "bob"}).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodPost, "/unfollow", token, gin.H{"handle": "bob"}).Code)
}

func TestNotificationsFlow(t *testing.T) {
	app := newTestApp(t)
	_, alice := app.signup("alice")
	_, bob := app.signup("bob")

	w := app.do(http.MethodGet, "/notifications/unread", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0}`, w.Body.String())

	// bob follows and likes; deliver the outbox the way the worker does
	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/follow", bob, gin.H{"handle": "alice"}).Code)
	w = app.do(http.MethodPost, "/posts", alice, gin.H{"content": "first!"})
	require.Equal(t, http.StatusCreated, w.Code)
	var p struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/posts/"+p.ID+"/like", bob, nil).Code)
	deliverAll(t, app)

	w = app.do(http.MethodGet, "/notifications/unread", alice, nil)
	assert.JSONEq(t, `{"count":2}`, w.Body.String())

	list := decodePage(t, app.do(http.MethodGet, "/notifications", alice, nil))
	require.Len(t, list.Items, 2)
	firstID := list.Items[0]["id"].(string)

	// a foreign id is ignored; only alice's own notification flips
	foreign := uuid.Must(uuid.NewV7()).String()
	w = app.do(http.MethodPost, "/notifications/read", alice, gin.H{"notificationIds": []string{firstID, foreign}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"count":1}`, app.do(http.MethodGet, "/notifications/unread", alice, nil).Body.String())

	w = app.do(http.MethodPost, "/notifications/read", alice, gin.H{"notificationIds": []string{"bad"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// no body marks everything
	w = app.do(http.MethodPost, "/notifications/read", alice, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"count":0}`, app.do(http.MethodGet, "/notifications/unread", alice, nil).Body.String())

}

func deliverAll(t *testing.T, app *testApp) {
	t.Helper()
	ctx := context.Background()
	pending, err := app.store.Activities().GetPending(ctx, 100)
	require.NoError(t, err)
	for _, a := range pending {
		require.NoError(t, app.notifications.Deliver(ctx, a))
		require.NoError(t, app.store.Activities().MarkDone(ctx, a.ID))
	}
}

func TestRepliesAndDrafts(t *testing.T) {
	app := newTestApp(t)
	_, alice := app.signup("alice")
	_, bob := app.signup("bob")

	w := app.do(http.MethodPost, "/posts", alice, gin.H{"content": "thread"})
	require.Equal(t, http.StatusCreated, w.Code)
	var p struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))

	w = app.do(http.MethodPost, "/posts/"+p.ID+"/comments", bob, gin.H{"body": "root"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var c struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))

	empty := decodePage(t, app.do(http.MethodGet, "/comments/"+c.ID+"/replies", "", nil))
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
	assert.Nil(t, empty.NextCursor)
	assert.Contains(t, app.do(http.MethodGet, "/replies?commentId="+c.ID, "", nil).Body.String(), `"items":[]`)

	w = app.do(http.MethodGet, "/comments/"+uuid.Must(uuid.NewV7()).String()+"/replies", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodPost, "/drafts", alice, gin.H{"content": "later"})
	require.Equal(t, http.StatusCreated, w.Code)
	var d struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))

	w = app.do(http.MethodDelete, "/drafts/"+d.ID, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "draft belongs to another user", errorOf(t, w))

	drafts := decodePage(t, app.do(http.MethodGet, "/drafts", alice, nil))
	assert.Len(t, drafts.Items, 1)

	assert.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/drafts/"+d.ID+"/publish", alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodDelete, "/drafts/"+d.ID, alice, nil).Code)
}

func TestFeedAndHealth(t *testing.T) {
	app := newTestApp(t)
	_, alice := app.signup("alice")
	_, bob := app.signup("bob")

	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/follow", alice, gin.H{"handle": "bob"}).Code)
	require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/posts", bob, gin.H{"content": "from bob"}).Code)

	feed := decodePage(t, app.do(http.MethodGet, "/feed", alice, nil))
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "from bob", feed.Items[0]["content"])

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/feed", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/feed", "garbage", nil).Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodGet, "/posts/not-a-uuid", "", nil).Code)
}
