package cache

import (
	"context"
	"strings"
	"time"

	"github.com/tripnest/internal/logger"

	"golang.org/x/sync/singleflight"
)

const publicNamespace = "public"

var loadGroup singleflight.Group

// PublicKey 构建公开目录缓存 key
func PublicKey(parts ...string) string {
	cleaned := make([]string, 0, len(parts)+1)
	cleaned = append(cleaned, publicNamespace)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			part = "-"
		}
		cleaned = append(cleaned, part)
	}
	return strings.Join(cleaned, ":")
}

// Remember 读取缓存，未命中时调用 loader 加载并回写
// 同一 key 的并发加载只会执行一次 loader
func Remember[T any](ctx context.Context, key string, ttl time.Duration, loader func() (T, error)) (T, error) {
	var cached T
	hit, err := GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warnw("cache_get_failed", "key", key, "error", err)
	}
	if hit {
		return cached, nil
	}

	value, err, _ := loadGroup.Do(key, func() (interface{}, error) {
		loaded, loadErr := loader()
		if loadErr != nil {
			return loaded, loadErr
		}
		if ttl > 0 {
			if setErr := SetJSON(ctx, key, loaded, ttl); setErr != nil {
				logger.Warnw("cache_set_failed", "key", key, "error", setErr)
			}
		}
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}

// InvalidatePublic 清除全部公开目录缓存
func InvalidatePublic(ctx context.Context) {
	if err := DelPrefix(ctx, publicNamespace+":"); err != nil {
		logger.Warnw("cache_invalidate_public_failed", "error", err)
	}
}
