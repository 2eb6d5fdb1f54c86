package userapp

import (
	"context"
	"errors"
	"testing"
	"time"

	"flock/internal/adapters/memory"
	"flock/internal/core/apperr"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testKey = []byte("test-secret")

func newService() *UserService {
	return NewUserService(memory.New().Users(), testKey, time.Hour, zap.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	u, err := svc.RegisterUser(ctx, "alice", "Alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Handle)

	_, err = svc.RegisterUser(ctx, "alice", "Other", "password123")
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	res, err := svc.LoginUser(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Greater(t, res.ExpiresAt, time.Now().Unix())

	id, err := ParseToken(testKey, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.String())

	_, err = svc.LoginUser(ctx, "alice", "wrong")
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
	_, err = svc.LoginUser(ctx, "ghost", "password123")
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
}

func TestParseTokenRejectsBadTokens(t *testing.T) {
	id := uuid.Must(uuid.NewV7())

	expired, err := GenerateToken(testKey, id, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = ParseToken(testKey, expired)
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))

	foreign, err := GenerateToken([]byte("other-key"), id, time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = ParseToken(testKey, foreign)
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))

	_, err = ParseToken(testKey, "not-a-token")
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	u, err := svc.RegisterUser(ctx, "bob", "Bob", "password123")
	require.NoError(t, err)
	id := uuid.FromStringOrNil(u.ID)

	name, avatar := "Robert", "https://example.com/bob.png"
	updated, err := svc.UpdateProfile(ctx, id, &name, &avatar)
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, avatar, updated.AvatarURL)

	blank := " "
	_, err = svc.UpdateProfile(ctx, id, &blank, nil)
	assert.True(t, errors.Is(err, apperr.ErrBadInput))

	profile, err := svc.GetProfile(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "Robert", profile.Name)
}
