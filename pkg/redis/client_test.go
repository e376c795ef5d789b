package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/yusufhadi/smartpos-backend/pkg/config"
)

type fakeCmdable struct {
	setNXCalls map[string]any
	values     map[string]string
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{setNXCalls: map[string]any{}, values: map[string]string{}}
}

func (f *fakeCmdable) Ping(ctx context.Context) *goredis.StatusCmd {
	cmd := goredis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (f *fakeCmdable) Get(ctx context.Context, key string) *goredis.StringCmd {
	cmd := goredis.NewStringCmd(ctx)
	if val, ok := f.values[key]; ok {
		cmd.SetVal(val)
	} else {
		cmd.SetErr(goredis.Nil)
	}
	return cmd
}

func (f *fakeCmdable) SetNX(ctx context.Context, key string, value any, ttl time.Duration) *goredis.BoolCmd {
	cmd := goredis.NewBoolCmd(ctx)
	if _, exists := f.values[key]; exists {
		cmd.SetVal(false)
		return cmd
	}
	f.setNXCalls[key] = value
	if s, ok := value.(string); ok {
		f.values[key] = s
	}
	cmd.SetVal(true)
	return cmd
}

func (f *fakeCmdable) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	cmd := goredis.NewIntCmd(ctx)
	var removed int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			removed++
		}
	}
	cmd.SetVal(removed)
	return cmd
}

func TestOptionsFromConfigRequiresEndpoint(t *testing.T) {
	t.Parallel()

	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	t.Parallel()

	opts, err := optionsFromConfig(config.RedisConfig{
		URL:      "redis://localhost:6379/2",
		PoolSize: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected address %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 5 {
		t.Fatalf("pool size fallback not applied, got %d", opts.PoolSize)
	}
}

func TestIdempotencyKeyNamespacing(t *testing.T) {
	t.Parallel()

	c := &Client{store: newFakeCmdable()}
	key := c.IdempotencyKey("checkout", "abc-123")
	if key != "pos:idempotency:checkout:abc-123" {
		t.Fatalf("unexpected key %q", key)
	}
}

func TestSetNXOnlyWritesOnce(t *testing.T) {
	t.Parallel()

	fake := newFakeCmdable()
	c := &Client{store: fake}
	ctx := context.Background()

	ok, err := c.SetNX(ctx, "pos:idempotency:checkout:k", "recorded", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first SetNX should succeed, ok=%v err=%v", ok, err)
	}

	ok, err = c.SetNX(ctx, "pos:idempotency:checkout:k", "other", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("second SetNX should report the key as taken")
	}

	val, err := c.Get(ctx, "pos:idempotency:checkout:k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "recorded" {
		t.Fatalf("stored value clobbered: %q", val)
	}
}
