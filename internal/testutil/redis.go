package testutil

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultTestRedisDB keeps tests away from DB 0 on a shared developer instance.
const defaultTestRedisDB = 15

func testRedisAddrs() []string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return []string{addr}
	}
	return []string{"localhost:56379", "redis:6379", "localhost:6379"}
}

func testRedisDB(t testing.TB) int {
	v := os.Getenv("TEST_REDIS_DB")
	if v == "" {
		return defaultTestRedisDB
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		t.Logf("ignoring invalid TEST_REDIS_DB=%q", v)
		return defaultTestRedisDB
	}
	return n
}

// SetupTestRedis connects to the first reachable test Redis, flushes its test DB and
// closes the client when the test ends. The test is skipped when no Redis answers
// unless TEST_REQUIRE_REDIS or TEST_REQUIRE_INFRA is set.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()
	db := testRedisDB(t)

	for _, addr := range testRedisAddrs() {
		client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := client.Ping(ctx).Err()
		if err == nil {
			err = client.FlushDB(ctx).Err()
		}
		cancel()
		if err != nil {
			t.Logf("redis not available at %s: %v", addr, err)
			_ = client.Close()
			continue
		}
		t.Cleanup(func() { _ = client.Close() })
		return client
	}

	if required("TEST_REQUIRE_REDIS") {
		t.Fatal("redis not available for testing")
	}
	t.Skip("redis not available for testing")
	return nil
}
