package workflow

import (
	"sync"

	"github.com/google/uuid"
)

// orderLocks serializes completion evaluation per order within this
// process. The dispatch claim in the store is what guards against other
// processes; this lock only keeps local goroutines from racing the
// sibling read against each other.
type orderLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*orderLock
}

type orderLock struct {
	mu   sync.Mutex
	refs int
}

func newOrderLocks() *orderLocks {
	return &orderLocks{locks: make(map[uuid.UUID]*orderLock)}
}

// lock blocks until the order's lock is held and returns the release
// function. Lock entries are dropped once no goroutine references them.
func (l *orderLocks) lock(orderID uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.locks[orderID]
	if !ok {
		entry = &orderLock{}
		l.locks[orderID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, orderID)
		}
		l.mu.Unlock()
	}
}
