package glimpse

import "sync"

// frameQueue collects callbacks for the next display frame. Engine
// initialization pushes from another goroutine, hence the mutex.
type frameQueue struct {
	mu        sync.Mutex
	pending   []func()
	requested bool

	// asks the host to call run on the next display frame, may be nil
	request func()

	// withdraws an outstanding request, may be nil
	cancel func()
}

func (q *frameQueue) push(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)

	needsRequest := !q.requested
	q.requested = true
	q.mu.Unlock()

	if needsRequest && q.request != nil {
		q.request()
	}
}

func (q *frameQueue) hasPending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending) > 0
}

// run calls all callbacks pushed before this call. Callbacks pushed
// while running are deferred to the next frame.
func (q *frameQueue) run() {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.requested = false
	q.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// flush runs the pending callbacks right now instead of on the next frame.
func (q *frameQueue) flush() {
	q.withdraw()
	q.run()
}

// withdraw cancels an outstanding frame request without running anything.
func (q *frameQueue) withdraw() {
	q.mu.Lock()
	requested := q.requested
	q.requested = false
	q.mu.Unlock()

	if requested && q.cancel != nil {
		q.cancel()
	}
}
