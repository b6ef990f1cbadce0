package runtime

import (
	"sync"

	"github.com/google/uuid"
)

// Registry fans values out to subscribers. Each subscriber owns a channel of
// capacity one: a slow reader misses intermediate values but always ends up
// with the latest one.
type Registry[T any] struct {
	mu          sync.RWMutex
	subscribers map[string]chan T
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{subscribers: make(map[string]chan T)}
}

// Subscribe registers a new subscriber. Calling cancel unregisters it and
// closes its channel; cancel is safe to call more than once.
func (r *Registry[T]) Subscribe() (<-chan T, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan T, 1)
	r.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() { r.unsubscribe(id) })
	}
}

func (r *Registry[T]) unsubscribe(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.subscribers[id]; ok {
		delete(r.subscribers, id)
		close(ch)
	}
}

// Publish delivers value to every subscriber without blocking.
func (r *Registry[T]) Publish(value T) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ch := range r.subscribers {
		// Drop the stale value, if any, so the send below cannot block.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- value:
		default:
		}
	}
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscribers)
}
