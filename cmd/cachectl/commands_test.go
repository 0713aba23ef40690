package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"codeberg.org/algrv/playground/internal/auth"
	"codeberg.org/algrv/playground/internal/cache"
	"codeberg.org/algrv/playground/playground/sessions"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionID = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"

func seedCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() }) //nolint:errcheck // test cleanup

	sessionCache := cache.NewSessionCacheFromClient(client, time.Hour)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	err := sessionCache.Set(context.Background(), &sessions.Session{
		ID:      testSessionID,
		OwnerID: "user-1",
		Chat: sessions.Transcript{
			{Role: sessions.RoleUser, Content: "make a button", Timestamp: now},
			{Role: sessions.RoleAI, Content: "done", Timestamp: now},
		},
		Code:      sessions.Code{JSX: "render(Button)"},
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)

	return mr
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	mr := seedCache(t)

	out, err := run(t, "list", "--redis-url", "redis://"+mr.Addr())

	require.NoError(t, err)
	assert.Contains(t, out, "SESSION")
	assert.Contains(t, out, testSessionID)
	assert.Contains(t, out, "user-1")
	assert.Contains(t, out, "2026-03-01T12:00:00Z")
}

func TestList_Empty(t *testing.T) {
	mr := miniredis.RunT(t)

	out, err := run(t, "list", "--redis-url", "redis://"+mr.Addr())

	require.NoError(t, err)
	assert.Contains(t, out, "no cached sessions")
}

func TestList_UnreadableEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("session:broken", "{not json"))

	out, err := run(t, "list", "--redis-url", "redis://"+mr.Addr())

	require.NoError(t, err)
	assert.Contains(t, out, "(unreadable)")
}

func TestShow(t *testing.T) {
	mr := seedCache(t)

	out, err := run(t, "show", testSessionID, "--redis-url", "redis://"+mr.Addr())

	require.NoError(t, err)
	assert.Contains(t, out, `"owner_id": "user-1"`)
	assert.Contains(t, out, `"jsx": "render(Button)"`)
}

func TestShow_NotCached(t *testing.T) {
	mr := miniredis.RunT(t)

	_, err := run(t, "show", testSessionID, "--redis-url", "redis://"+mr.Addr())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not cached")
}

func TestEvict(t *testing.T) {
	mr := seedCache(t)

	out, err := run(t, "evict", testSessionID, "--redis-url", "redis://"+mr.Addr())

	require.NoError(t, err)
	assert.Contains(t, out, "evicted "+testSessionID)
	assert.False(t, mr.Exists("session:"+testSessionID))
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cachectl-test-secret")

	out, err := run(t, "token", "user-42", "dev@example.com")
	require.NoError(t, err)

	claims, err := auth.ValidateJWT(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "dev@example.com", claims.Email)
}

func TestToken_RequiresUserID(t *testing.T) {
	_, err := run(t, "token")
	assert.Error(t, err)
}
