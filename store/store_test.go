package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreWithClient(client, ttl)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestKey(t *testing.T) {
	assert.Equal(t, "checkin-state:abc", Key("abc"))
}

func TestStores_RoundTrip(t *testing.T) {
	redisStore, _ := newRedisStore(t, 0)
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Load(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Save(ctx, "s1", []byte(`{"id":null}`)))
			got, err := s.Load(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, `{"id":null}`, string(got))

			require.NoError(t, s.Save(ctx, "s1", []byte(`{"id":"x"}`)))
			got, err = s.Load(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, `{"id":"x"}`, string(got))

			require.NoError(t, s.Delete(ctx, "s1"))
			_, err = s.Load(ctx, "s1")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestRedisStore_UsesPrefixedKeyAndTTL(t *testing.T) {
	s, mr := newRedisStore(t, time.Hour)
	require.NoError(t, s.Save(context.Background(), "abc", []byte("{}")))

	assert.True(t, mr.Exists("checkin-state:abc"))
	assert.Equal(t, time.Hour, mr.TTL("checkin-state:abc"))

	mr.FastForward(2 * time.Hour)
	_, err := s.Load(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CopiesData(t *testing.T) {
	s := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, s.Save(context.Background(), "k", buf))
	buf[0] = 'x'

	got, err := s.Load(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
