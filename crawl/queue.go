// Package crawl walks the built HTML tree from the home topic and reports
// dead links and unreachable pages.
package crawl

// Queue is a BFS queue of topic ids with deduplication.
type Queue struct {
	items   []string
	visited map[string]bool
	idx     int // current read position
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		visited: make(map[string]bool),
	}
}

// Add enqueues an id if it hasn't been seen before.
func (q *Queue) Add(id string) {
	if q.visited[id] {
		return
	}
	q.visited[id] = true
	q.items = append(q.items, id)
}

// HasNext returns true if there are unprocessed ids.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed id and advances the pointer.
func (q *Queue) Next() string {
	id := q.items[q.idx]
	q.idx++
	return id
}

// All returns all discovered ids in BFS order.
func (q *Queue) All() []string {
	return q.items
}
