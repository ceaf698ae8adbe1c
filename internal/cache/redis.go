package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewRedisClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})
}

func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// Deduper records webhook delivery keys so repeat deliveries of the same
// event can be dropped. It fails open: if Redis is unavailable the event is
// treated as unseen and processed, which the idempotent reconciliation
// tolerates.
type Deduper struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewDeduper(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Deduper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Deduper{rdb: rdb, ttl: ttl, log: log}
}

// Seen marks the key and reports whether it had already been marked.
func (d *Deduper) Seen(ctx context.Context, key string) bool {
	set, err := d.rdb.SetNX(ctx, "webhook:seen:"+key, 1, d.ttl).Result()
	if err != nil {
		d.log.Warn("webhook dedupe unavailable", zap.Error(err))
		return false
	}
	return !set
}
