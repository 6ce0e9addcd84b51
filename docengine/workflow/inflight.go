package workflow

import "sync"

// tracker keeps one task per in-flight mutation, keyed by record ID (or the
// idempotency key for creates). A detached task still applies its result to
// the store on completion, but user feedback is suppressed — the user already
// walked away from the modal.
type tracker struct {
	mu    sync.Mutex
	tasks map[string]*task
}

type task struct {
	mu       sync.Mutex
	detached bool
}

func newTracker() *tracker {
	return &tracker{tasks: make(map[string]*task)}
}

func (t *tracker) begin(key string) *task {
	t.mu.Lock()
	defer t.mu.Unlock()
	tk := &task{}
	t.tasks[key] = tk
	return tk
}

func (t *tracker) end(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.tasks, key)
}

// detachAll marks every outstanding task detached.
func (t *tracker) detachAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, tk := range t.tasks {
		tk.detach()
	}
}

func (tk *task) detach() {
	tk.mu.Lock()
	tk.detached = true
	tk.mu.Unlock()
}

func (tk *task) isDetached() bool {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	return tk.detached
}
