package cache

import (
	"context"
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/models"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	ctx := context.Background()
	if Enabled() || Client() != nil {
		t.Fatalf("cache should be disabled")
	}

	if err := SetUserAuthState(ctx, &UserAuthState{UserID: 1, Role: "buyer"}); err != nil {
		t.Fatalf("set on disabled cache should be nil, got %v", err)
	}
	state, hit, err := GetUserAuthState(ctx, 1)
	if err != nil || hit || state != nil {
		t.Fatalf("disabled cache should miss, got %+v %v %v", state, hit, err)
	}
	if err := DelUserAuthState(ctx, 1); err != nil {
		t.Fatalf("del on disabled cache should be nil, got %v", err)
	}

	// 未启用 Redis 时每个批次都视为首次
	for i := 0; i < 2; i++ {
		first, err := MarkGuestReconcile(ctx, "batch-1", time.Minute)
		if err != nil || !first {
			t.Fatalf("disabled cache should always mark first, got %v %v", first, err)
		}
	}
	if err := Close(); err != nil {
		t.Fatalf("close disabled cache failed: %v", err)
	}
}

func TestMarkGuestReconcileEmptyBatch(t *testing.T) {
	first, err := MarkGuestReconcile(context.Background(), "", time.Minute)
	if err != nil || !first {
		t.Fatalf("empty batch id should skip dedupe, got %v %v", first, err)
	}
}

func TestBuildUserAuthState(t *testing.T) {
	if BuildUserAuthState(nil) != nil {
		t.Fatalf("nil user should build nil state")
	}
	state := BuildUserAuthState(&models.User{ID: 7, Role: "admin", TokenVersion: 3, IsBlocked: true})
	if state.UserID != 7 || state.Role != "admin" || state.TokenVersion != 3 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestBuildKey(t *testing.T) {
	previous := redisPrefix
	redisPrefix = "sf"
	t.Cleanup(func() { redisPrefix = previous })

	if got := buildKey(userAuthStateKey(5)); got != "sf:auth:user:5" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := buildKey(guestReconcileKey("abc")); got != "sf:reconcile:guest:abc" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := buildKey("  "); got != "sf" {
		t.Fatalf("blank key should resolve to prefix, got %s", got)
	}
}
