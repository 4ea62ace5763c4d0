package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_PushPopPeek(t *testing.T) {
	h := newHistory()
	_, ok := h.Peek()
	assert.False(t, ok)

	h.Push(0)
	h.Push(1)
	h.Push(2)
	top, ok := h.Peek()
	assert.True(t, ok)
	assert.Equal(t, NodeID(2), top)

	below, _ := h.Below()
	assert.Equal(t, NodeID(1), below)

	popped, ok := h.Pop()
	assert.True(t, ok)
	assert.Equal(t, NodeID(2), popped)
	retained, ok := h.Retained()
	assert.True(t, ok)
	assert.Equal(t, NodeID(2), retained)

	h.Pop()
	_, ok = h.Pop()
	assert.False(t, ok, "first entry is never popped")
	assert.Equal(t, 1, h.Len())
}

func TestHistory_RecordSkipsDuplicateSource(t *testing.T) {
	h := newHistory()
	h.record(0, ids(1, 2))
	h.record(2, ids(3))
	assert.Equal(t, ids(0, 1, 2, 3), h.Nodes())
}

func TestHistory_StepBack(t *testing.T) {
	h := newHistory()
	h.record(0, ids(1, 2, 3))
	h.stepBack(3, 2)
	assert.Equal(t, ids(0, 1, 2), h.Nodes())

	// a member whose history does not end at the stack's node still lands on it
	g := newHistory()
	g.record(0, ids(1))
	g.stepBack(3, 2)
	assert.Equal(t, ids(0, 1, 2), g.Nodes())
	r, _ := g.Retained()
	assert.Equal(t, NodeID(3), r)
}

func TestHistory_ResetKeepsRetained(t *testing.T) {
	h := newHistory()
	h.record(0, ids(1))
	h.Pop()
	h.Reset(0, 1)
	assert.Equal(t, ids(0, 1), h.Nodes())
	r, ok := h.Retained()
	assert.True(t, ok)
	assert.Equal(t, NodeID(1), r)

	h.Clear()
	assert.Zero(t, h.Len())
	_, ok = h.Retained()
	assert.False(t, ok)
}
