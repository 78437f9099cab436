package booking

import "sync"

// keyedMutex serializes callers per booking id so a read-modify-write on one
// booking can never interleave with another on the same id, while different
// bookings proceed independently.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*lockEntry
}

type lockEntry struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int64]*lockEntry)}
}

// Lock blocks until the per-id lock is held and returns the unlock func.
func (k *keyedMutex) Lock(id int64) func() {
	k.mu.Lock()
	entry, ok := k.locks[id]
	if !ok {
		entry = &lockEntry{}
		k.locks[id] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.Lock()

	return func() {
		entry.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
