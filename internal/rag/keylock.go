// ABOUTME: Per-key mutex serializing conversation turns on the same key
// ABOUTME: Append/overwrite on the history store is read-modify-write, not atomic
package rag

import "sync"

// keyLock hands out one mutex per conversation key. Mutexes are never
// released from the map; key cardinality is bounded by active sessions.
type keyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock acquires the mutex for key and returns its unlock func.
func (k *keyLock) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
