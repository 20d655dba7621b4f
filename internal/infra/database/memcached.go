package database

import (
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// NewMemcached returns a client for a comma-separated list of servers.
func NewMemcached(servers string) *memcache.Client {
	var addrs []string
	for _, s := range strings.Split(servers, ",") {
		if s = strings.TrimSpace(s); s != "" {
			addrs = append(addrs, s)
		}
	}

	mc := memcache.New(addrs...)
	mc.Timeout = 500 * time.Millisecond
	return mc
}
