package pipeline

import (
	"sync"

	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/abstract"
)

// Collection is the append-only set of scored abstracts. Its lock is
// independent of the work queue's.
type Collection struct {
	mu    sync.Mutex
	items []abstract.Abstract
}

// NewCollection returns an empty collection sized for n results.
func NewCollection(n int) *Collection {
	return &Collection{items: make([]abstract.Abstract, 0, n)}
}

// Append stores a, stamping its Seq with the insertion position.
func (c *Collection) Append(a abstract.Abstract) {
	c.mu.Lock()
	a.Seq = len(c.items)
	c.items = append(c.items, a)
	c.mu.Unlock()
}

// Len returns the number of stored results.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Results returns a copy of the stored results in insertion order.
func (c *Collection) Results() []abstract.Abstract {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]abstract.Abstract, len(c.items))
	copy(out, c.items)
	return out
}
