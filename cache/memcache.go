package cache

import (
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/golang/glog"
)

// Store is the minimal contract this package requires of the backing
// key-value service: per-key get, set-with-expiry and delete. The production
// implementation is memcached; tests inject a map-backed store.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, timeToLive int32) error
	Delete(key string) error
}

// ErrCacheMiss is returned by a Store when a key is not present. It is never
// surfaced by this package; a miss is reported as ok=false.
var ErrCacheMiss = memcache.ErrCacheMiss

var (
	store   Store
	enabled bool
)

// InitCache creates the memcached client and enables the cache functions
// within this package. It is the responsibility of whatever has the values
// for this function (usually main.go shortly after reading the config file)
// to call this.
func InitCache(host string, port int64) {
	store = memcacheStore{mc: memcache.New(fmt.Sprintf("%s:%d", host, port))}
	enabled = true
}

// InitCacheStore enables the cache functions over the given store. Used by
// tests to substitute the memcached client.
func InitCacheStore(s Store) {
	store = s
	enabled = true
}

// Set puts the given bytes into the cache. The write is best-effort: failures
// are logged and swallowed, the caller never finds out.
func Set(key string, value []byte, timeToLive int32) {
	if !enabled {
		return
	}

	if err := store.Set(key, value, timeToLive); err != nil {
		glog.Errorf("store.Set(%s) %+v", key, err)
		return
	}
}

// Get gets the bytes for the given key, if they are in the cache. Any read
// error is treated as a miss so that a store outage degrades to fetching
// fresh on every request.
func Get(key string) ([]byte, bool) {
	if !enabled {
		return nil, false
	}

	value, err := store.Get(key)
	if err != nil {
		// Cache misses are expected, but other errors are logged.
		if err != ErrCacheMiss {
			glog.Warningf("store.Get(%s) %+v", key, err)
		}
		return nil, false
	}

	return value, true
}

// Delete removes the item matching the given key from the cache, if it is in
// the cache. A miss is not an error; anything else is returned so that the
// invalidation endpoint can tally failures.
func Delete(key string) error {
	if !enabled {
		return nil
	}

	err := store.Delete(key)
	if err != nil && err != ErrCacheMiss {
		glog.Warningf("store.Delete(%s) %+v", key, err)
		return err
	}

	return nil
}

// memcacheStore adapts the gomemcache client to the Store interface.
type memcacheStore struct {
	mc *memcache.Client
}

func (s memcacheStore) Get(key string) ([]byte, error) {
	item, err := s.mc.Get(key)
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

func (s memcacheStore) Set(key string, value []byte, timeToLive int32) error {
	return s.mc.Set(
		&memcache.Item{
			Key:        key,
			Value:      value,
			Expiration: timeToLive, // time in seconds
		},
	)
}

func (s memcacheStore) Delete(key string) error {
	return s.mc.Delete(key)
}
