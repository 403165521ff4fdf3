// Package batch provides a deduplicating work queue for invocations that
// take several crash IDs at once. Each ID is fetched exactly once, in the
// order first given.
package batch

// Queue is a FIFO queue with deduplication.
type Queue struct {
	items []string
	seen  map[string]bool
	idx   int
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{seen: make(map[string]bool)}
}

// Add enqueues an item if it hasn't been seen before.
func (q *Queue) Add(item string) {
	if q.seen[item] {
		return
	}
	q.seen[item] = true
	q.items = append(q.items, item)
}

// HasNext returns true if there are unprocessed items.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed item and advances the pointer.
func (q *Queue) Next() string {
	item := q.items[q.idx]
	q.idx++
	return item
}

// Len returns the number of unique items enqueued.
func (q *Queue) Len() int {
	return len(q.items)
}
