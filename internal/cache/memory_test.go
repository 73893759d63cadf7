package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// 可控時鐘，TTL 測試不用 sleep
type fakeClock struct {
	mutex sync.Mutex
	now   time.Time
}

func (clock *fakeClock) Now() time.Time {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.mutex.Lock()
	clock.now = clock.now.Add(d)
	clock.mutex.Unlock()
}

func newTestBackend(t *testing.T) (*memoryBackend, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	// janitor 間隔拉長，掃描改由測試手動觸發
	backend := newMemoryBackend(time.Hour, clock.Now)
	t.Cleanup(backend.stopJanitor)
	return backend, clock
}

func TestMemoryBackendSetGet(t *testing.T) {
	backend, _ := newTestBackend(t)
	ctx := context.Background()

	if err := backend.Set(ctx, "k1", "v1", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, found, err := backend.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found || value != "v1" {
		t.Fatalf("got (%q, %v), want (\"v1\", true)", value, found)
	}
}

func TestMemoryBackendLazyExpiry(t *testing.T) {
	backend, clock := newTestBackend(t)
	ctx := context.Background()

	backend.Set(ctx, "k1", "v1", time.Minute)
	clock.Advance(2 * time.Minute)

	_, found, err := backend.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatal("expired entry should be a miss")
	}
	// 過期項目在讀取時就被清掉
	if backend.size() != 0 {
		t.Fatalf("expired entry should be removed, size=%d", backend.size())
	}
}

func TestMemoryBackendSweep(t *testing.T) {
	backend, clock := newTestBackend(t)
	ctx := context.Background()

	backend.Set(ctx, "expired", "v", time.Minute)
	backend.Set(ctx, "alive", "v", time.Hour)
	clock.Advance(10 * time.Minute)

	backend.sweep()

	if backend.size() != 1 {
		t.Fatalf("sweep should keep only live entries, size=%d", backend.size())
	}
	if _, found, _ := backend.Get(ctx, "alive"); !found {
		t.Fatal("live entry should survive the sweep")
	}
}

func TestMemoryBackendDeleteAndClear(t *testing.T) {
	backend, _ := newTestBackend(t)
	ctx := context.Background()

	backend.Set(ctx, "k1", "v1", time.Minute)
	backend.Set(ctx, "k2", "v2", time.Minute)
	backend.Set(ctx, "k3", "v3", time.Minute)

	if err := backend.Delete(ctx, "k1", "k2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if backend.size() != 1 {
		t.Fatalf("after delete size=%d, want 1", backend.size())
	}

	if err := backend.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if backend.size() != 0 {
		t.Fatalf("after clear size=%d, want 0", backend.size())
	}
}

func TestMemoryBackendInvalidateUnsupported(t *testing.T) {
	backend, _ := newTestBackend(t)

	_, err := backend.Invalidate(context.Background(), "pattamap:establishments:*")
	if !errors.Is(err, ErrPatternUnsupported) {
		t.Fatalf("got %v, want ErrPatternUnsupported", err)
	}
}
