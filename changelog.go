package ddvalidate

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ChangeLog records resolver coercions keyed by a hash of (descriptor,
// new value), so replaying the same coercion within a run is a no-op
// (spec §4.4/§4.5's idempotent change log). It is safe for concurrent
// use.
type ChangeLog struct {
	mu   sync.Mutex
	seen map[uint64]struct{}
}

// NewChangeLog builds an empty change log.
func NewChangeLog() *ChangeLog {
	return &ChangeLog{seen: make(map[uint64]struct{})}
}

// changeKey hashes (descriptor, newValue) into the log's idempotency key.
func changeKey(descriptor string, newValue any) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(descriptor)
	_, _ = h.WriteString("\x00")
	_, _ = fmt.Fprintf(h, "%v", newValue)
	return h.Sum64()
}

// Record logs a coercion and reports whether it had not already been
// recorded for this (descriptor, newValue) pair.
func (c *ChangeLog) Record(descriptor string, newValue any) bool {
	key := changeKey(descriptor, newValue)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[key]; ok {
		return false
	}
	c.seen[key] = struct{}{}
	return true
}

// Seen reports whether a coercion for (descriptor, newValue) has already
// been recorded, without recording it.
func (c *ChangeLog) Seen(descriptor string, newValue any) bool {
	key := changeKey(descriptor, newValue)
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.seen[key]
	return ok
}
