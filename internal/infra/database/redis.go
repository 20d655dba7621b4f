package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/totegamma/foodgram/internal/config"
)

// NewRedis connects to the redis server holding token revocations and
// checks that it answers.
func NewRedis(ctx context.Context, conf config.Server) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        conf.RedisAddr,
		Password:    conf.RedisPassword,
		DB:          conf.RedisDB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, errors.Wrapf(err, "ping redis at %s", conf.RedisAddr)
	}
	return rdb, nil
}
