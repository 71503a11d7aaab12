package pending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_Seeded(t *testing.T) {
	q := NewQueue(Seed()...)
	items := q.List()
	require.Len(t, items, 2)
	assert.Equal(t, "PEND-001", items[0].ID)
	assert.Equal(t, "Nikola Tesla", items[1].Name)
}

func TestQueue_GetAndRemove(t *testing.T) {
	q := NewQueue(Seed()...)

	p, err := q.Get("PEND-002")
	require.NoError(t, err)
	assert.Equal(t, "Thomas Edison", p.Host)

	removed, err := q.Remove("PEND-001")
	require.NoError(t, err)
	assert.Equal(t, "Mark Twain", removed.Name)
	assert.Len(t, q.List(), 1)

	_, err = q.Remove("PEND-001")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = q.Get("PEND-001")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueue_ListIsACopy(t *testing.T) {
	q := NewQueue(Seed()...)
	items := q.List()
	items[0].Name = "changed"
	assert.Equal(t, "Mark Twain", q.List()[0].Name)
}
