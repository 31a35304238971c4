package catalog

import (
	"sync"
	"time"

	"github.com/hugr-lab/mysqlcat-go/internal/snapshot"
)

// SchemaCacheKey is the object cache key under which the schema entry
// list is stored.
const SchemaCacheKey = "mysql_schema_entries_cache"

// ObjectCache stores named metadata snapshots across catalog
// generations, so a cleared catalog can repopulate without touching
// the remote database. Snapshots are kept compressed.
// Safe for concurrent use.
type ObjectCache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
	codec *snapshot.Codec
}

type cacheItem struct {
	data   []byte
	readAt time.Time
}

// NewObjectCache creates an empty cache.
// Caller must call Close() when done to release codec resources.
func NewObjectCache() (*ObjectCache, error) {
	codec, err := snapshot.NewCodec()
	if err != nil {
		return nil, err
	}
	return &ObjectCache{
		items: make(map[string]cacheItem),
		codec: codec,
	}, nil
}

// Put stores a snapshot of v under key, stamped with the current time.
func (c *ObjectCache) Put(key string, v any) error {
	data, err := c.codec.Encode(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheItem{data: data, readAt: time.Now()}
	return nil
}

// Get decodes the snapshot stored under key into v and returns when it
// was read from the remote database. found is false when no snapshot
// exists.
func (c *ObjectCache) Get(key string, v any) (readAt time.Time, found bool, err error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return time.Time{}, false, nil
	}
	if err := c.codec.Decode(item.data, v); err != nil {
		return time.Time{}, false, err
	}
	return item.readAt, true, nil
}

// Delete removes the snapshot stored under key, if any.
func (c *ObjectCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all snapshots.
func (c *ObjectCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]cacheItem)
}

// Close releases the codec resources.
func (c *ObjectCache) Close() error {
	return c.codec.Close()
}
