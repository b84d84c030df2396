// Package keymutex provides mutual exclusion scoped to a string key.
// Goroutines locking different keys never wait for each other.
package keymutex

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyMutex is a set of mutexes created on demand and released when unused.
// The zero value is ready to use.
type KeyMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{entries: make(map[string]*entry)}
}

// Lock acquires the mutex for key and returns the function that releases it.
func (km *KeyMutex) Lock(key string) (unlock func()) {
	km.mu.Lock()
	if km.entries == nil {
		km.entries = make(map[string]*entry)
	}
	e, ok := km.entries[key]
	if !ok {
		e = &entry{}
		km.entries[key] = e
	}
	e.refs++
	km.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			km.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(km.entries, key)
			}
			km.mu.Unlock()
		})
	}
}

// Len returns the number of keys currently held or awaited.
func (km *KeyMutex) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()
	return len(km.entries)
}
