package flash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func testStore(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "s1", "Successfully Updated!"))
	require.NoError(t, store.Add(ctx, "s1", "second"))
	require.NoError(t, store.Add(ctx, "s2", "other session"))

	msgs, err := store.Pop(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Successfully Updated!", "second"}, msgs)

	msgs, err = store.Pop(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	msgs, err = store.Pop(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, []string{"other session"}, msgs)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	client, _ := setupTestRedis(t)
	testStore(t, NewRedisStore(client, time.Minute))
}

func TestRedisStoreExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "s1", "stale"))
	assert.Equal(t, time.Minute, mr.TTL("flash:s1"))

	mr.FastForward(2 * time.Minute)

	msgs, err := store.Pop(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestSessionMiddlewareIssuesCookie(t *testing.T) {
	var seen string
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, cookies[0].Value, seen)
}
