// Package pending holds pre-registered visitors waiting for approval at the
// gate. The queue lives in process memory only.
package pending

import (
	"errors"
	"slices"
	"sync"

	"visentry-backend/models"
)

var ErrNotFound = errors.New("pending visitor not found")

type Queue struct {
	mu    sync.RWMutex
	items []models.PendingVisitor
}

func NewQueue(items ...models.PendingVisitor) *Queue {
	return &Queue{items: slices.Clone(items)}
}

// Seed returns the sample visitors the queue starts with.
func Seed() []models.PendingVisitor {
	return []models.PendingVisitor{
		{
			ID:        "PEND-001",
			Name:      "Mark Twain",
			FirstName: "Mark",
			LastName:  "Twain",
			Email:     "mark.twain@example.com",
			Phone:     "(555) 123-4567",
			Company:   "Publishing House",
			Address:   "351 W 5th St",
			Host:      "Arthur Pendragon",
			Purpose:   "Book signing",
		},
		{
			ID:        "PEND-002",
			Name:      "Nikola Tesla",
			FirstName: "Nikola",
			LastName:  "Tesla",
			Email:     "nikola.tesla@example.com",
			Phone:     "(555) 987-6543",
			Company:   "AC/DC Electric",
			Address:   "1889 Wardenclyffe Ct",
			Host:      "Thomas Edison",
			Purpose:   "Discuss alternating current",
		},
	}
}

func (q *Queue) List() []models.PendingVisitor {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return slices.Clone(q.items)
}

func (q *Queue) Get(id string) (models.PendingVisitor, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	i := q.index(id)
	if i < 0 {
		return models.PendingVisitor{}, ErrNotFound
	}
	return q.items[i], nil
}

// Remove takes a visitor off the queue and returns it.
func (q *Queue) Remove(id string) (models.PendingVisitor, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	i := q.index(id)
	if i < 0 {
		return models.PendingVisitor{}, ErrNotFound
	}
	p := q.items[i]
	q.items = slices.Delete(q.items, i, i+1)
	return p, nil
}

func (q *Queue) index(id string) int {
	return slices.IndexFunc(q.items, func(p models.PendingVisitor) bool { return p.ID == id })
}
