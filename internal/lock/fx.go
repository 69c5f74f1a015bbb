package lock

import (
	"strings"

	"github.com/coachably/coachpay/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewLocker selects the Redis locker when a Redis address is configured,
// otherwise the in-process one. Multi-node deployments must configure
// Redis or concurrent writers on different nodes will not serialize.
func NewLocker(cfg config.Config, log *zap.Logger) Locker {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		log.Warn("no redis configured, using in-process purchase locks")
		return NewMemoryLocker()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})
	return NewRedisLocker(client)
}

var Module = fx.Module("lock",
	fx.Provide(NewLocker),
)
