package table

import (
	"sync"

	"github.com/roach88/acquire/internal/engine"
)

// moveQueue is a thread-safe FIFO of move records for one listener.
//
// The queue is unbounded so a slow listener never blocks Submit.
// The signal channel lets Next wait with a context.
type moveQueue struct {
	mu     sync.Mutex
	moves  []engine.MoveRecord
	closed bool
	signal chan struct{} // Signals availability (buffered, size 1)
}

func newMoveQueue() *moveQueue {
	return &moveQueue{signal: make(chan struct{}, 1)}
}

// enqueue adds a move to the back of the queue.
// Returns false if the queue is closed.
func (q *moveQueue) enqueue(m engine.MoveRecord) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.moves = append(q.moves, m)

	// Non-blocking: the buffer of 1 coalesces signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// tryDequeue removes the front move without blocking.
func (q *moveQueue) tryDequeue() (engine.MoveRecord, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.moves) == 0 {
		return engine.MoveRecord{}, false
	}
	m := q.moves[0]
	q.moves[0] = engine.MoveRecord{}
	if len(q.moves) == 1 {
		q.moves = q.moves[:0]
	} else {
		q.moves = q.moves[1:]
	}
	return m, true
}

// isDrained reports whether the queue is closed and empty.
func (q *moveQueue) isDrained() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed && len(q.moves) == 0
}

func (q *moveQueue) wait() <-chan struct{} {
	return q.signal
}

func (q *moveQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.moves)
}

// close wakes any waiter. Queued moves stay readable.
func (q *moveQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}
