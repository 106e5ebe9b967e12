package hashutil

import (
	"os"
	"sync"

	"github.com/golang/groupcache/lru"

	"sha2sum.org/sha2sum/crypto/sha256"
)

// cacheKey identifies one version of a file.
type cacheKey struct {
	path    string
	size    int64
	modTime int64
}

func newCacheKey(path string, fi os.FileInfo) cacheKey {
	return cacheKey{path: path, size: fi.Size(), modTime: fi.ModTime().UnixNano()}
}

// DigestCache is a concurrent safe LRU of file digests. Entries are keyed by
// path, size and modification time, so a changed file misses the cache.
type DigestCache struct {
	l     sync.Mutex
	cache *lru.Cache
}

func NewDigestCache(maxEntries int) *DigestCache {
	return &DigestCache{
		cache: lru.New(maxEntries),
	}
}

// Get looks up the digest of path as described by fi.
func (c *DigestCache) Get(path string, fi os.FileInfo) (sha256.Digest, bool) {
	c.l.Lock()
	defer c.l.Unlock()
	value, ok := c.cache.Get(newCacheKey(path, fi))
	if !ok {
		return sha256.Digest{}, false
	}
	return value.(sha256.Digest), true
}

func (c *DigestCache) Add(path string, fi os.FileInfo, d sha256.Digest) {
	c.l.Lock()
	c.cache.Add(newCacheKey(path, fi), d)
	c.l.Unlock()
}

func (c *DigestCache) Len() int {
	c.l.Lock()
	defer c.l.Unlock()
	return c.cache.Len()
}

func (c *DigestCache) Clear() {
	c.l.Lock()
	c.cache.Clear()
	c.l.Unlock()
}
