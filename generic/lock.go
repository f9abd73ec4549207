package generic

import (
	"sort"
	"sync"
)

// =============================================================================
// KEYED MUTEX - Mutual exclusion per key
// =============================================================================

// KeyedMutex serializes work per key (a room number, a user id) while letting
// unrelated keys proceed in parallel. Entries are reference counted and
// removed once nobody holds or waits on them.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

// Lock acquires every key and returns a function releasing them. Keys are
// deduplicated and taken in sorted order so two callers locking overlapping
// sets can never deadlock.
func (km *KeyedMutex) Lock(keys ...string) (unlock func()) {
	ordered := uniqueSorted(keys)
	held := make([]*keyedEntry, 0, len(ordered))
	for _, k := range ordered {
		e := km.acquire(k)
		e.mu.Lock()
		held = append(held, e)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			km.release(ordered[i])
		}
	}
}

// Len returns the number of keys currently held or waited on.
func (km *KeyedMutex) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()
	return len(km.locks)
}

func (km *KeyedMutex) acquire(key string) *keyedEntry {
	km.mu.Lock()
	defer km.mu.Unlock()
	e, ok := km.locks[key]
	if !ok {
		e = &keyedEntry{}
		km.locks[key] = e
	}
	e.refs++
	return e
}

func (km *KeyedMutex) release(key string) {
	km.mu.Lock()
	defer km.mu.Unlock()
	e := km.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(km.locks, key)
	}
}

func uniqueSorted(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
