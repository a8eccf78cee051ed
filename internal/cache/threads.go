// Package cache keeps built comment trees in a freecache instance so repeated reads of a
// busy plan skip the comment lookup.
package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte = 1024 * 1024
	// plans share generation counters modulo this; a shared counter only costs an extra miss
	generationStripes = 256
)

// ThreadCache stores one serialized thread per plan. Every plan has a generation that
// Invalidate bumps; a Set only lands when the caller read its data under the current
// generation, so a thread read before a write can never be stored after that write.
type ThreadCache struct {
	cache     *freecache.Cache
	ttlSecond int

	mu          sync.Mutex
	generations [generationStripes]uint64
}

// NewThreadCache creates a cache of sizeMB megabytes. A ttl under one second keeps entries
// until they are evicted or invalidated.
func NewThreadCache(sizeMB int, ttl time.Duration) *ThreadCache {
	if sizeMB < 1 {
		sizeMB = 1
	}
	return &ThreadCache{
		cache:     freecache.NewCache(sizeMB * megabyte),
		ttlSecond: int(ttl / time.Second),
	}
}

func threadKey(planID int64) []byte {
	return []byte(fmt.Sprintf("thread::%d", planID))
}

// Get decodes the thread cached for planID into dst. It reports false on a miss or when the
// cached bytes cannot be decoded.
func (c *ThreadCache) Get(planID int64, dst any) bool {
	data, err := c.cache.Get(threadKey(planID))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Errorf("failed to unmarshal cached thread for plan %d: %s", planID, err)
		c.Invalidate(planID)
		return false
	}
	return true
}

// Generation returns the current generation of planID. Read it before loading the data
// that is later passed to Set.
func (c *ThreadCache) Generation(planID int64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[stripe(planID)]
}

// Set caches thread for planID if no Invalidate happened since generation was read.
// It reports whether the thread was stored.
func (c *ThreadCache) Set(planID int64, generation uint64, thread any) (bool, error) {
	data, err := json.Marshal(thread)
	if err != nil {
		return false, fmt.Errorf("marshal thread: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[stripe(planID)] != generation {
		log.Tracef("thread of plan %d changed while loading, not caching it", planID)
		return false, nil
	}
	if err := c.cache.Set(threadKey(planID), data, c.ttlSecond); err != nil {
		return false, fmt.Errorf("set thread cache for plan %d: %w", planID, err)
	}
	log.Tracef("thread cache set for plan %d (%d bytes)", planID, len(data))
	return true, nil
}

// Invalidate drops the cached thread of planID and moves its generation forward.
func (c *ThreadCache) Invalidate(planID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[stripe(planID)]++
	c.cache.Del(threadKey(planID))
}

func stripe(planID int64) uint64 {
	return uint64(planID) % generationStripes
}

func (c *ThreadCache) EntryCount() int64 {
	return c.cache.EntryCount()
}
