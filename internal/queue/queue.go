// Package queue provides the FIFO of pending abstract identifiers that the
// scoring workers drain.
package queue

import "sync"

// Recorder is notified of every successful dequeue while the queue lock is
// still held, so its records follow dequeue order exactly.
type Recorder interface {
	Record(worker int, id string)
}

// Queue is filled single-threaded before any worker starts, then drained
// concurrently through TryDequeue. Every enqueued identifier is handed to
// exactly one caller.
type Queue struct {
	mu    sync.Mutex
	items []string
	head  int
}

// New returns a queue holding ids in order.
func New(ids ...string) *Queue {
	q := &Queue{items: make([]string, 0, len(ids))}
	for _, id := range ids {
		q.Enqueue(id)
	}
	return q
}

// Enqueue appends id. It must not race with TryDequeue.
func (q *Queue) Enqueue(id string) {
	q.items = append(q.items, id)
}

// TryDequeue removes and returns the front identifier, reporting false when
// the queue is empty. If rec is non-nil it is called with worker and the
// identifier before the lock is released.
func (q *Queue) TryDequeue(rec Recorder, worker int) (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head >= len(q.items) {
		return "", false
	}
	id := q.items[q.head]
	q.items[q.head] = ""
	q.head++
	if rec != nil {
		rec.Record(worker, id)
	}
	return id, true
}

// Len returns the number of identifiers not yet dequeued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
