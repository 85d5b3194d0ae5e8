package lock

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/deliveryportal/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewLockerWithoutRedis(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	locker, err := newLocker(lockerParams{Lifecycle: lc, Config: &config.Config{}, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := locker.(NopLocker); !ok {
		t.Fatalf("expected NopLocker, got %T", locker)
	}
}

func TestNewLockerRejectsBadURL(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	if _, err := newLocker(lockerParams{Lifecycle: lc, Config: &config.Config{RedisURL: "http://nope"}, Logger: testLogger()}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewLockerWithRedis(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	cfg := &config.Config{RedisURL: "redis://127.0.0.1:1/0?dial_timeout=50ms&max_retries=-1"}
	locker, err := newLocker(lockerParams{Lifecycle: lc, Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := locker.(*RedisLocker); !ok {
		t.Fatalf("expected *RedisLocker, got %T", locker)
	}

	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("start must tolerate unreachable redis: %v", err)
	}
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}
