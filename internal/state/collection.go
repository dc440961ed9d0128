// Package state holds the in-memory copy of each logged-in user's finance
// records and keeps it in step with the backend.
package state

import (
	"sync"

	"finboard/internal/models"
)

// Status is the load state of a collection.
type Status int

const (
	Uninitialized Status = iota
	Loading
	Loaded
	Error
)

var statusNames = [...]string{"uninitialized", "loading", "loaded", "error"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// MarshalText renders the status by name in JSON.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Keyed is a record addressed by its backend id.
type Keyed interface {
	Key() models.ID
}

// Collection is one user's copy of one backend collection. It is safe for
// concurrent use; when two fetches overlap, the one that finishes last wins.
type Collection[T Keyed] struct {
	mu     sync.RWMutex
	status Status
	items  []T
	err    error
}

// NewCollection returns an uninitialized collection.
func NewCollection[T Keyed]() *Collection[T] {
	return &Collection[T]{}
}

// Begin marks a fetch as in flight.
func (c *Collection[T]) Begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = Loading
	c.err = nil
}

// Succeed stores the fetched items.
func (c *Collection[T]) Succeed(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = Loaded
	c.items = append(make([]T, 0, len(items)), items...)
	c.err = nil
}

// Fail records a failed fetch and empties the collection.
func (c *Collection[T]) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = Error
	c.items = make([]T, 0)
	c.err = err
}

// Reset returns the collection to its initial state.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = Uninitialized
	c.items = nil
	c.err = nil
}

// Status returns the current load state.
func (c *Collection[T]) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Err returns the error of the last failed fetch, if the collection is in Error.
func (c *Collection[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Items returns a copy of the items in order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(make([]T, 0, len(c.items)), c.items...)
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the item with id.
func (c *Collection[T]) Get(id models.ID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.Key() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Append adds item at the end.
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// Replace swaps the item with the same id in place. It reports whether one
// was found.
func (c *Collection[T]) Replace(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Key() == item.Key() {
			c.items[i] = item
			return true
		}
	}
	return false
}

// Remove deletes the first item with id, keeping the order of the rest.
func (c *Collection[T]) Remove(id models.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Key() == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Update rewrites every item with fn under the write lock.
func (c *Collection[T]) Update(fn func(T) T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		c.items[i] = fn(c.items[i])
	}
}
