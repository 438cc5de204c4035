// Package queue hands review notifications from the request path to the
// background workers.
package queue

import (
	"context"
	"sync"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
)

// MemoryQueue is an in-process buffered queue. Enqueue never blocks; a full
// buffer drops the item with application.ErrQueueFull.
type MemoryQueue struct {
	mu     sync.RWMutex
	items  chan string
	closed bool
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size < 1 {
		size = 1
	}
	return &MemoryQueue{items: make(chan string, size)}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, reviewID string) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return application.ErrQueueClosed
	}
	select {
	case q.items <- reviewID:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return application.ErrQueueFull
	}
}

// Dequeue drains buffered items after Close before reporting ErrQueueClosed.
func (q *MemoryQueue) Dequeue(ctx context.Context) (string, error) {
	select {
	case id, ok := <-q.items:
		if !ok {
			return "", application.ErrQueueClosed
		}
		return id, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.items)
	}
	return nil
}

func (q *MemoryQueue) Len() int {
	return len(q.items)
}
