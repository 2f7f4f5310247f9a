package admin

import (
	"strings"
	"time"

	"github.com/tripnest/internal/cache"
	handlershared "github.com/tripnest/internal/http/handlers/shared"
	"github.com/tripnest/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondMappedError(c *gin.Context, err error, fallbackCode int, fallbackKey string) {
	handlershared.RespondMappedError(c, err, handlershared.AllErrorRules, fallbackCode, fallbackKey)
}

// parseTimeNullable 解析 RFC3339 时间，兼容纯日期
func parseTimeNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
	}
	return &parsed, nil
}

// invalidatePublicCache 目录数据变更后清除前台缓存
func invalidatePublicCache(c *gin.Context, event string) {
	cache.InvalidatePublic(c.Request.Context())
	logger.Debugw("admin_public_cache_invalidated", "event", event)
}
