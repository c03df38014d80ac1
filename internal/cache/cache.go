// internal/cache/cache.go

// Package cache bounds re-tokenization cost with a fixed-capacity LRU
// of per-line highlight results.
package cache

import (
	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/syntax"
	"github.com/zeebo/blake3"
)

// Fingerprint is a BLAKE3 digest of a line's text. A changed line gets
// a different fingerprint and therefore a different cache key; stale
// entries for old fingerprints are reclaimed by LRU pressure or by an
// artifact-wide sweep on full-content replacement.
type Fingerprint [32]byte

// FingerprintOf hashes one line of text.
func FingerprintOf(text string) Fingerprint {
	return blake3.Sum256([]byte(text))
}

type key struct {
	artifactID string
	line       int
	fp         Fingerprint
}

// entry is one arena slot. prev/next form an intrusive doubly-linked
// recency order over slot indices; -1 terminates.
type entry struct {
	key    key
	tokens []syntax.Token
	prev   int
	next   int
}

// Cache is a bounded LRU mapping (artifact, line, fingerprint) to
// tokenized output. Entries live in an arena indexed by a key map, so
// hits and evictions are O(1) with no per-entry allocation.
//
// Not safe for concurrent use; the app serializes access.
type Cache struct {
	capacity int
	slots    []entry
	index    map[key]int
	free     []int
	head     int // Most recently used slot, -1 when empty
	tail     int // Least recently used slot, -1 when empty
}

// DefaultCapacity caches up to 10000 lines across all artifacts.
const DefaultCapacity = 10000

// New creates a cache holding up to capacity line entries.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		slots:    make([]entry, 0, capacity),
		index:    make(map[key]int, capacity),
		head:     -1,
		tail:     -1,
	}
}

// GetOrCompute returns the cached tokens for the line, tokenizing and
// inserting on a miss. A hit returns the stored slice itself, so
// callers (and tests) can observe that no recomputation happened.
// Infallible: tokenization is total.
func (c *Cache) GetOrCompute(artifactID string, line int, text string, lang *syntax.Language) []syntax.Token {
	k := key{artifactID: artifactID, line: line, fp: FingerprintOf(text)}

	if slot, ok := c.index[k]; ok {
		c.moveToFront(slot)
		return c.slots[slot].tokens
	}

	tokens := syntax.TokenizeLine(text, lang)
	c.insert(k, tokens)
	return tokens
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.index)
}

// InvalidateArtifact removes every entry belonging to the artifact.
// O(capacity); called on full-content replacement and artifact close,
// which are rare next to per-line lookups.
func (c *Cache) InvalidateArtifact(artifactID string) {
	removed := 0
	for k, slot := range c.index {
		if k.artifactID == artifactID {
			c.remove(slot)
			removed++
		}
	}
	if removed > 0 {
		logger.Debugf("cache: swept %d entries for artifact %s", removed, artifactID)
	}
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.slots = c.slots[:0]
	c.index = make(map[key]int, c.capacity)
	c.free = c.free[:0]
	c.head, c.tail = -1, -1
}

func (c *Cache) insert(k key, tokens []syntax.Token) {
	var slot int
	if n := len(c.free); n > 0 {
		slot = c.free[n-1]
		c.free = c.free[:n-1]
		c.slots[slot] = entry{key: k, tokens: tokens}
	} else {
		slot = len(c.slots)
		c.slots = append(c.slots, entry{key: k, tokens: tokens})
	}
	c.index[k] = slot
	c.pushFront(slot)

	if len(c.index) > c.capacity {
		c.remove(c.tail) // Evict exactly the least recently used entry
	}
}

func (c *Cache) remove(slot int) {
	c.unlink(slot)
	delete(c.index, c.slots[slot].key)
	c.slots[slot] = entry{}
	c.free = append(c.free, slot)
}

func (c *Cache) moveToFront(slot int) {
	if c.head == slot {
		return
	}
	c.unlink(slot)
	c.pushFront(slot)
}

func (c *Cache) pushFront(slot int) {
	c.slots[slot].prev = -1
	c.slots[slot].next = c.head
	if c.head >= 0 {
		c.slots[c.head].prev = slot
	}
	c.head = slot
	if c.tail < 0 {
		c.tail = slot
	}
}

func (c *Cache) unlink(slot int) {
	prev, next := c.slots[slot].prev, c.slots[slot].next
	if prev >= 0 {
		c.slots[prev].next = next
	} else {
		c.head = next
	}
	if next >= 0 {
		c.slots[next].prev = prev
	} else {
		c.tail = prev
	}
}
