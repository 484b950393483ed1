package lru

import (
	"container/list"
	"sync"
)

type CacheIdentifier interface {
	Identifier() string
}

type listEntry[T CacheIdentifier] struct {
	id    string
	entry T
}

// Cache is a thread-safe, fixed capacity cache that evicts the least
// recently used entry.
type Cache[T CacheIdentifier] struct {
	capacity int
	mu       sync.Mutex
	order    *list.List
	index    map[string]*list.Element
}

func NewCache[T CacheIdentifier](capacity int) *Cache[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache[T]{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity),
	}
}

func (c *Cache[T]) Add(entry T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := entry.Identifier()

	if element, ok := c.index[id]; ok {
		element.Value.(*listEntry[T]).entry = entry
		c.order.MoveToFront(element)
		return
	}

	if c.order.Len() >= c.capacity {
		c.evictUnsafe()
	}

	c.index[id] = c.order.PushFront(&listEntry[T]{id: id, entry: entry})
}

func (c *Cache[T]) evictUnsafe() {
	element := c.order.Back()
	if element == nil {
		return
	}
	c.order.Remove(element)
	delete(c.index, element.Value.(*listEntry[T]).id)
}

func (c *Cache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

func (c *Cache[T]) GetByID(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	c.order.MoveToFront(element)
	return element.Value.(*listEntry[T]).entry, true
}

// GetOrCreate returns the cached entry for id, or stores and returns
// the result of generate.
func (c *Cache[T]) GetOrCreate(id string, generate func() (T, error)) (T, error) {
	if entry, ok := c.GetByID(id); ok {
		return entry, nil
	}

	entry, err := generate()
	if err != nil {
		return entry, err
	}
	c.Add(entry)
	return entry, nil
}

func (c *Cache[T]) DeleteByID(id string) (present bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.index[id]
	if !ok {
		return false
	}
	c.order.Remove(element)
	delete(c.index, id)
	return true
}

// List returns entries from the least to the most recently used.
func (c *Cache[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]T, 0, c.order.Len())
	for element := c.order.Back(); element != nil; element = element.Prev() {
		entries = append(entries, element.Value.(*listEntry[T]).entry)
	}
	return entries
}
