package types

import (
	"sync"
)

// FIFO with unlimited capacity
// not thread safe
type queue[T any] struct {
	data []T
}

func (q *queue[T]) len() int {
	return len(q.data)
}

func (q *queue[T]) push(v T) {
	q.data = append(q.data, v)
}

// panics if empty
func (q *queue[T]) pop() T {
	var zero T
	v := q.data[0]
	q.data[0] = zero
	q.data = q.data[1:]
	return v
}

// 1 ctrl M send N recv
type ControlledQueue[T any] struct {
	data          queue[T]
	mu            sync.Mutex
	requestRecvCh chan struct{}
	stopCh        chan struct{}
	closed        bool
}

func NewControlledQueue[T any]() *ControlledQueue[T] {
	return &ControlledQueue[T]{
		stopCh:        make(chan struct{}),
		requestRecvCh: make(chan struct{}, 1),
	}
}

// Close wakes every blocked receiver. Safe to call more than once.
func (cq *ControlledQueue[T]) Close() {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	if cq.closed {
		return
	}
	cq.closed = true
	close(cq.stopCh)
}

// return true on Send
// return false if closed and not Send
func (cq *ControlledQueue[T]) Send(v T) bool {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	if cq.closed {
		return false
	}
	cq.data.push(v)
	select {
	case cq.requestRecvCh <- struct{}{}:
	default:
	}
	return true
}

// blocks on empty to wait to receive
func (cq *ControlledQueue[T]) Recv() (T, bool) {
	_, v, ok := cq.attemptRecv(true)
	return v, ok
}

// return (false, zero, true) on empty
// return (true, v, true) on recv
// return (true, zero, false) on closed
// can opt out of blocking on empty
func (cq *ControlledQueue[T]) attemptRecv(blockOnEmpty bool) (canRecv bool, v T, ok bool) {
	for {
		cq.mu.Lock()
		if cq.closed {
			cq.mu.Unlock()
			return true, v, false
		}
		if cq.data.len() > 0 {
			v = cq.data.pop()
			if cq.data.len() > 0 {
				// hand the wakeup on to the next receiver
				select {
				case cq.requestRecvCh <- struct{}{}:
				default:
				}
			}
			cq.mu.Unlock()
			return true, v, true
		}
		cq.mu.Unlock()
		if !blockOnEmpty {
			return false, v, true
		}
		select {
		case <-cq.requestRecvCh:
		case <-cq.stopCh:
		}
	}
}

// Drain pops everything currently queued without blocking.
func (cq *ControlledQueue[T]) Drain() []T {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	out := make([]T, 0, cq.data.len())
	for cq.data.len() > 0 {
		out = append(out, cq.data.pop())
	}
	return out
}
