package schema

import (
	"regexp"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// cacheKey namespaces the pattern cache's digests; it's just a fixed
// key for blake2b's keyed mode, not a secret.
var cacheKey = []byte("motly/schema/pattern-cache")

// patternCache memoizes compiled `matches` regexes for one validation
// run, keyed by a blake2b-256 digest of the pattern text, the same
// clear-when-full eviction a compiled-validator cache keyed by a document
// digest would use, adapted to a keyed BLAKE2b digest since MOTLY's
// dependency surface already pulls in golang.org/x/crypto.
type patternCache struct {
	mu      sync.RWMutex
	entries map[string]*regexp.Regexp
	maxSize int
}

func newPatternCache(maxSize int) *patternCache {
	return &patternCache{entries: make(map[string]*regexp.Regexp), maxSize: maxSize}
}

func (c *patternCache) compile(pattern string) (*regexp.Regexp, error) {
	key := patternDigest(pattern)

	c.mu.RLock()
	re, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.maxSize {
		// Simple eviction: if the cache is full, clear it rather than
		// tracking recency.
		c.entries = make(map[string]*regexp.Regexp)
	}
	c.entries[key] = re
	return re, nil
}

func patternDigest(pattern string) string {
	h, err := blake2b.New256(cacheKey)
	if err != nil {
		// cacheKey is a fixed, well-under-64-byte key; New256 cannot fail.
		panic(err)
	}
	h.Write([]byte(pattern))
	return string(h.Sum(nil))
}
