package services

import "sync"

// UserLocks hands out one mutex per user id. Entries are reference counted and
// dropped once the last holder unlocks, so the map only holds active users.
type UserLocks struct {
	mu      sync.Mutex
	entries map[uint]*userLockEntry
}

type userLockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewUserLocks() *UserLocks {
	return &UserLocks{entries: make(map[uint]*userLockEntry)}
}

// Lock blocks until the caller holds the lock for userID and returns the
// function that releases it.
func (locks *UserLocks) Lock(userID uint) func() {
	locks.mu.Lock()
	entry, exists := locks.entries[userID]
	if !exists {
		entry = &userLockEntry{}
		locks.entries[userID] = entry
	}
	entry.refs++
	locks.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		locks.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(locks.entries, userID)
		}
		locks.mu.Unlock()
	}
}

func (locks *UserLocks) activeCount() int {
	locks.mu.Lock()
	defer locks.mu.Unlock()
	return len(locks.entries)
}
