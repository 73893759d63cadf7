package cache

import (
	"context"
	"sync"
	"time"
)

const defaultSweepInterval = 60 * time.Second

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// memoryBackend in-process fallback：到期靠定時掃描（janitor）加查詢時的
// lazy check 雙保險。不支援 pattern invalidation。
type memoryBackend struct {
	mutex   sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
	stopCh  chan struct{}
	stopped sync.Once
}

func newMemoryBackend(sweepInterval time.Duration, now func() time.Time) *memoryBackend {
	backend := &memoryBackend{
		entries: make(map[string]memoryEntry),
		now:     now,
		stopCh:  make(chan struct{}),
	}
	go backend.janitor(sweepInterval)
	return backend
}

func (backend *memoryBackend) Name() string { return "memory" }

func (backend *memoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	backend.mutex.RLock()
	entry, ok := backend.entries[key]
	backend.mutex.RUnlock()

	if !ok {
		return "", false, nil
	}
	if backend.now().After(entry.expiresAt) {
		// lazy expiry：讀到過期資料就順手刪掉
		backend.mutex.Lock()
		if current, still := backend.entries[key]; still && backend.now().After(current.expiresAt) {
			delete(backend.entries, key)
		}
		backend.mutex.Unlock()
		return "", false, nil
	}
	return entry.value, true, nil
}

func (backend *memoryBackend) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	backend.mutex.Lock()
	backend.entries[key] = memoryEntry{value: value, expiresAt: backend.now().Add(ttl)}
	backend.mutex.Unlock()
	return nil
}

func (backend *memoryBackend) Delete(_ context.Context, keys ...string) error {
	backend.mutex.Lock()
	for _, key := range keys {
		delete(backend.entries, key)
	}
	backend.mutex.Unlock()
	return nil
}

func (backend *memoryBackend) Invalidate(_ context.Context, _ string) (int64, error) {
	return 0, ErrPatternUnsupported
}

func (backend *memoryBackend) Clear(_ context.Context) error {
	backend.mutex.Lock()
	backend.entries = make(map[string]memoryEntry)
	backend.mutex.Unlock()
	return nil
}

func (backend *memoryBackend) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			backend.sweep()
		case <-backend.stopCh:
			return
		}
	}
}

// sweep 刪掉所有已過期的項目
func (backend *memoryBackend) sweep() {
	nowValue := backend.now()
	backend.mutex.Lock()
	for key, entry := range backend.entries {
		if nowValue.After(entry.expiresAt) {
			delete(backend.entries, key)
		}
	}
	backend.mutex.Unlock()
}

func (backend *memoryBackend) stopJanitor() {
	backend.stopped.Do(func() { close(backend.stopCh) })
}

func (backend *memoryBackend) size() int {
	backend.mutex.RLock()
	defer backend.mutex.RUnlock()
	return len(backend.entries)
}
