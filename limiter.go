package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// lookupLimiter decides whether a client may make another status lookup.
type lookupLimiter interface {
	Allow(ctx context.Context, client string) bool
}

// redisLimiter is a fixed-window counter per client kept in redis. Redis
// errors let the request through.
type redisLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	log    *zap.Logger
}

func (l *redisLimiter) Allow(ctx context.Context, client string) bool {
	key := "resumestatus:lookups:" + client

	// INCR and EXPIRE NX run in one MULTI/EXEC so every counter gets a TTL.
	var hits *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		hits = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		l.log.Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
		return true
	}
	return hits.Val() <= l.limit
}

// connectRedis returns nil when REDIS_ADDR is unset or unreachable; lookups
// are then not throttled.
func connectRedis(ctx context.Context, addr string, log *zap.Logger) *redis.Client {
	if addr == "" {
		log.Warn("REDIS_ADDR not set, lookup throttling disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Error("could not connect to redis, lookup throttling disabled", zap.Error(err))
		_ = rdb.Close()
		return nil
	}

	log.Info("connected to redis", zap.String("addr", addr))
	return rdb
}

func newLookupLimiter(rdb *redis.Client, perMinute int, log *zap.Logger) lookupLimiter {
	if rdb == nil || perMinute <= 0 {
		return nil
	}
	return &redisLimiter{rdb: rdb, limit: int64(perMinute), window: time.Minute, log: log}
}
