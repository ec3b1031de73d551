package database

import (
	"github.com/bradfitz/gomemcache/memcache"
)

// NewMemcached connects the cache sitting in front of field-value reads.
func NewMemcached(server string) *memcache.Client {
	return memcache.New(server)
}
