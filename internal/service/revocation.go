package service

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "fg:revoked:"

// RevocationStore keeps the ids of logged-out tokens until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisRevocationStore struct {
	rdb *redis.Client
}

func NewRedisRevocationStore(redisClient *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{
		rdb: redisClient,
	}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	err := s.rdb.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err()
	if err != nil {
		return errors.Wrap(err, "revoke token")
	}
	return nil
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, errors.Wrap(err, "check token revocation")
	}
	return n > 0, nil
}

// LocalRevocationStore keeps revocations in process memory. Revocations
// are lost on restart and are not shared between instances.
type LocalRevocationStore struct {
	store *gocache.Cache
}

func NewLocalRevocationStore() *LocalRevocationStore {
	return &LocalRevocationStore{store: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (s *LocalRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.store.Set(tokenID, struct{}{}, ttl)
	return nil
}

func (s *LocalRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, found := s.store.Get(tokenID)
	return found, nil
}
