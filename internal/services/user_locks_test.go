package services

import (
	"sync"
	"testing"
	"time"
)

func TestUserLocksSerializeSameUser(t *testing.T) {
	locks := NewUserLocks()

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(7)
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("expected at most one holder at a time, saw %d", maxSeen)
	}
	if locks.activeCount() != 0 {
		t.Fatalf("expected lock entries to be released, got %d", locks.activeCount())
	}
}

func TestUserLocksDoNotBlockOtherUsers(t *testing.T) {
	locks := NewUserLocks()
	unlockFirst := locks.Lock(1)
	defer unlockFirst()

	acquired := make(chan struct{})
	go func() {
		unlock := locks.Lock(2)
		unlock()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("expected lock for another user to be acquired while user 1 is held")
	}
	if locks.activeCount() != 1 {
		t.Fatalf("expected only user 1 to remain locked, got %d entries", locks.activeCount())
	}
}
