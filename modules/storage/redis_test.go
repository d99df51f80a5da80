package storage

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
)

// testRedisAddr requires Redis running on localhost:6379; tests skip otherwise.
const testRedisAddr = "localhost:6379"

// cleanupKeys removes all keys matching the pattern.
func cleanupKeys(ctx context.Context, client *redis.Client, pattern string) {
	var cursor uint64
	for {
		keys, nextCursor, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	prefix := "test:daily-todos:" + t.Name() + ":"
	cleanupKeys(ctx, client, prefix+"*")
	t.Cleanup(func() {
		cleanupKeys(ctx, client, prefix+"*")
		client.Close()
	})

	s := NewRedisStore(client, prefix)
	if s.Name() != BackendRedis {
		t.Errorf("Name() = %q, want %q", s.Name(), BackendRedis)
	}
	backendContract(t, s)
}
