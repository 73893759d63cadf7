package cache

import (
	"strings"

	"pattamap/internal/core"
)

// BuildKey 組出完整快取 key，例如 BuildKey("establishment", id)
// → "pattamap:establishment:<id>"。所有 key 都掛在同一個前綴下，
// pattern invalidation 才不會掃到別人的 keyspace。
func BuildKey(parts ...string) string {
	all := append([]string{string(core.RedisKeyServerName)}, parts...)
	return strings.Join(all, ":")
}

// BuildPattern 組出 invalidation pattern，例如 BuildPattern("establishments")
// → "pattamap:establishments:*"
func BuildPattern(parts ...string) string {
	return BuildKey(parts...) + ":*"
}

// Keyspace 取 key 的第一段業務片段，當 metrics label 用（避免高基數）
func Keyspace(key string) string {
	trimmed := strings.TrimPrefix(key, string(core.RedisKeyServerName)+":")
	if i := strings.Index(trimmed, ":"); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}
