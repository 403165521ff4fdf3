package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueDedupAndOrder(t *testing.T) {
	q := NewQueue()
	q.Add("a")
	q.Add("b")
	q.Add("a")
	q.Add("c")
	q.Add("b")

	assert.Equal(t, 3, q.Len())

	var got []string
	for q.HasNext() {
		got = append(got, q.Next())
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.False(t, q.HasNext())
}

func TestQueueEmpty(t *testing.T) {
	q := NewQueue()
	assert.False(t, q.HasNext())
	assert.Zero(t, q.Len())
}
