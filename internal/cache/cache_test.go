package cache

import (
	"context"
	"reflect"
	"testing"
	"time"

	"pattamap/internal/telemetry"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	backend := newMemoryBackend(time.Hour, clock.Now)
	t.Cleanup(backend.stopJanitor)
	return &Store{
		logger:  zap.NewNop(),
		trace:   &telemetry.Trace{},
		metric:  &telemetry.Metric{},
		backend: backend,
	}
}

type cachedListing struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	original := cachedListing{
		ID:       "65f0c0ffee",
		Name:     "Lighthouse",
		Category: "Nightclub",
		Tags:     []string{"walking-street", "late"},
	}
	store.Set(ctx, BuildKey("establishment", original.ID), original, 600)

	var restored cachedListing
	if hit := store.Get(ctx, BuildKey("establishment", original.ID), &restored); !hit {
		t.Fatal("expected cache hit")
	}
	if !reflect.DeepEqual(original, restored) {
		t.Fatalf("round trip mismatch: %+v != %+v", original, restored)
	}
}

func TestStoreMissOnUnknownKey(t *testing.T) {
	store := newTestStore(t)

	var dest cachedListing
	if hit := store.Get(context.Background(), BuildKey("establishment", "missing"), &dest); hit {
		t.Fatal("expected cache miss")
	}
}

func TestStoreMalformedValueIsMiss(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key := BuildKey("establishment", "broken")
	if err := store.backend.Set(ctx, key, "{not json", time.Minute); err != nil {
		t.Fatalf("seed backend: %v", err)
	}

	var dest cachedListing
	if hit := store.Get(ctx, key, &dest); hit {
		t.Fatal("malformed payload must degrade to a miss")
	}
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key := BuildKey("establishment", "gone")
	store.Set(ctx, key, cachedListing{ID: "gone"}, 600)
	store.Delete(ctx, key)

	var dest cachedListing
	if hit := store.Get(ctx, key, &dest); hit {
		t.Fatal("deleted key should be a miss")
	}
}

func TestStoreInvalidateNoopOnMemoryBackend(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key := BuildKey("establishments", "list", "Bar")
	store.Set(ctx, key, cachedListing{ID: "still-here"}, 600)

	// in-process backend 不支援 pattern：要 no-op 而不是 panic 或誤刪
	store.Invalidate(ctx, BuildPattern("establishments"))

	var dest cachedListing
	if hit := store.Get(ctx, key, &dest); !hit {
		t.Fatal("invalidate on memory backend must leave entries untouched")
	}
}

func TestBuildKeyAndKeyspace(t *testing.T) {
	key := BuildKey("establishment", "abc123")
	if got := Keyspace(key); got != "establishment" {
		t.Fatalf("Keyspace(%q) = %q, want \"establishment\"", key, got)
	}
	if got := BuildPattern("establishments"); got != BuildKey("establishments")+":*" {
		t.Fatalf("unexpected pattern %q", got)
	}
}
