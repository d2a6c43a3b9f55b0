package crawler

import "sync"

// VisitedSet tracks normalized URLs that have been accepted into the
// frontier. An entry is added the moment a task is enqueued, not when it
// completes, so a URL still in flight cannot be enqueued a second time.
// The set is monotonic for the lifetime of one crawl run.
type VisitedSet struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{urls: make(map[string]struct{})}
}

// Add inserts a normalized URL and reports whether it was newly added.
// The check and insert happen under one lock, which makes Add the
// at-most-once gate for frontier admission: of any number of workers
// racing to enqueue the same URL, exactly one sees true.
func (v *VisitedSet) Add(normalized string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.urls[normalized]; ok {
		return false
	}
	v.urls[normalized] = struct{}{}
	return true
}

// Contains reports whether a normalized URL is in the set.
func (v *VisitedSet) Contains(normalized string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, ok := v.urls[normalized]
	return ok
}

// Len returns the number of distinct URLs in the set.
func (v *VisitedSet) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.urls)
}
