package engine

// History is a piece's record of visited nodes. Forward moves push every node
// they visit; back-steps pop one entry at a time and never below the first.
// The node most recently stepped back from is retained so that a piece backed
// onto the start can undo its way off it again.
type History struct {
	nodes    []NodeID
	retained NodeID
}

func newHistory() History {
	return History{retained: NoNode}
}

// Push appends id.
func (h *History) Push(id NodeID) {
	h.nodes = append(h.nodes, id)
}

// Peek returns the top entry.
func (h *History) Peek() (NodeID, bool) {
	if len(h.nodes) == 0 {
		return NoNode, false
	}
	return h.nodes[len(h.nodes)-1], true
}

// Pop removes the top entry and retains it. The first entry is never popped.
func (h *History) Pop() (NodeID, bool) {
	if len(h.nodes) < 2 {
		return NoNode, false
	}
	top := h.nodes[len(h.nodes)-1]
	h.nodes = h.nodes[:len(h.nodes)-1]
	h.retained = top
	return top, true
}

// Below returns the entry directly under the top, which is where a back-step
// lands.
func (h *History) Below() (NodeID, bool) {
	if len(h.nodes) < 2 {
		return NoNode, false
	}
	return h.nodes[len(h.nodes)-2], true
}

// Retained returns the node most recently popped.
func (h *History) Retained() (NodeID, bool) {
	return h.retained, h.retained != NoNode
}

func (h *History) Len() int { return len(h.nodes) }

// Nodes returns a copy of the entries, bottom first.
func (h *History) Nodes() []NodeID {
	out := make([]NodeID, len(h.nodes))
	copy(out, h.nodes)
	return out
}

// Reset replaces the entries with ids. The retained node is kept.
func (h *History) Reset(ids ...NodeID) {
	h.nodes = append(h.nodes[:0], ids...)
}

// Clear forgets everything, including the retained node.
func (h *History) Clear() {
	h.nodes = h.nodes[:0]
	h.retained = NoNode
}

// record logs a forward move from src along path.
func (h *History) record(src NodeID, path []NodeID) {
	if top, ok := h.Peek(); !ok || top != src {
		h.Push(src)
	}
	for _, id := range path {
		h.Push(id)
	}
}

// stepBack moves the top from "from" to "to": from is popped when it is on top
// and to is pushed unless it is already there.
func (h *History) stepBack(from, to NodeID) {
	if top, ok := h.Peek(); ok && top == from {
		h.Pop()
	}
	h.retained = from
	if top, ok := h.Peek(); !ok || top != to {
		h.Push(to)
	}
}
