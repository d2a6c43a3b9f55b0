package crawler

import "sync"

// Task is one unit of crawl work: a normalized URL and the depth at
// which it was discovered. The seed has depth 0; each level of followed
// links adds one. A task is consumed exactly once by a worker.
type Task struct {
	URL   string
	Depth int
}

// Frontier is the pending-work queue driving breadth-first traversal.
// Push and Pop are independently atomic; no caller-side locking is
// required. FIFO order at the scheduling level is what preserves
// level-order traversal: all depth-d tasks are dispatched before any
// depth-(d+1) task discovered from them.
type Frontier struct {
	mu    sync.Mutex
	tasks []Task
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{}
}

// Push appends a task to the back of the queue.
func (f *Frontier) Push(t Task) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tasks = append(f.tasks, t)
}

// Pop removes and returns the task at the front of the queue.
// The second return value is false when the queue is empty.
func (f *Frontier) Pop() (Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.tasks) == 0 {
		return Task{}, false
	}
	t := f.tasks[0]
	f.tasks = f.tasks[1:]
	return t, true
}

// Drain removes and returns all currently pending tasks in FIFO order.
// The engine uses this to dispatch one breadth-first level as a batch:
// pushes that happen while the batch runs land in the frontier for the
// next level.
func (f *Frontier) Drain() []Task {
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks := f.tasks
	f.tasks = nil
	return tasks
}

// Len returns the number of pending tasks.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.tasks)
}
