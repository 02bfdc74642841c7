package entries

import (
	"sync"

	"github.com/google/uuid"
)

// entryLocks serializes mutating operations per entry id. Summarize,
// answer, and dismiss all read the entry, transform a whole field, and
// write it back; interleaving two such operations on one entry would lose
// updates. Locks are reference-counted so the table only holds entries
// with an operation in flight.
type entryLocks struct {
	mu   sync.Mutex
	held map[uuid.UUID]*entryLock
}

type entryLock struct {
	mu   sync.Mutex
	refs int
}

func newEntryLocks() *entryLocks {
	return &entryLocks{held: make(map[uuid.UUID]*entryLock)}
}

// acquire blocks until the per-entry lock is held and returns the release
// function.
func (l *entryLocks) acquire(id uuid.UUID) func() {
	l.mu.Lock()
	lock, ok := l.held[id]
	if !ok {
		lock = &entryLock{}
		l.held[id] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.held, id)
		}
		l.mu.Unlock()
	}
}
