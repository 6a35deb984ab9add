package usecase

import "sync"

// keyedLock serializes registration and funding per repository full name so
// concurrent requests for the same repository never interleave their
// check-then-act sequences.
type keyedLock struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{
		locks: map[string]*lockEntry{},
	}
}

// Lock acquires the lock for key and returns its release function. Entries
// are reference counted and removed once the last holder releases.
func (x *keyedLock) Lock(key string) func() {
	x.mu.Lock()
	entry, ok := x.locks[key]
	if !ok {
		entry = &lockEntry{}
		x.locks[key] = entry
	}
	entry.refs++
	x.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		x.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(x.locks, key)
		}
		x.mu.Unlock()
	}
}
