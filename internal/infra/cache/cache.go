package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"
)

// Cache stores JSON-encoded values with a TTL.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Key builds a cache key from a fixed namespace and an arbitrary argument.
// The argument is hashed so the key is always memcached-safe.
func Key(namespace string, arg string) string {
	return "fg:" + namespace + ":" + strconv.FormatUint(xxh3.HashString(arg), 16)
}

type Memcached struct {
	client *memcache.Client
}

func NewMemcached(client *memcache.Client) *Memcached {
	return &Memcached{client: client}
}

func (m *Memcached) Get(ctx context.Context, key string, dst any) (bool, error) {
	item, err := m.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "memcached get")
	}
	if err := json.Unmarshal(item.Value, dst); err != nil {
		return false, errors.Wrap(err, "memcached decode")
	}
	return true, nil
}

func (m *Memcached) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "memcached encode")
	}
	err = m.client.Set(&memcache.Item{
		Key:        key,
		Value:      raw,
		Expiration: int32(ttl / time.Second),
	})
	return errors.Wrap(err, "memcached set")
}

// Local is an in-process cache for single-instance deployments and tests.
type Local struct {
	store *gocache.Cache
}

func NewLocal(defaultTTL time.Duration) *Local {
	return &Local{store: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (l *Local) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok := l.store.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw.([]byte), dst); err != nil {
		return false, errors.Wrap(err, "local cache decode")
	}
	return true, nil
}

func (l *Local) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "local cache encode")
	}
	l.store.Set(key, raw, ttl)
	return nil
}
