package canvas

// HistoryDepth is the maximum number of undo snapshots retained.
const HistoryDepth = 50

// History is a bounded stack of pre-mutation state snapshots. Each discrete
// user action pushes at most one entry; the oldest entry is discarded when
// the stack is full.
type History struct {
	stack []*State
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Push records pre as an undo point, unless it holds the same content as
// post (geometry, z ordering, counters; selection is ignored). Pushing a
// nil pre is a no-op.
func (h *History) Push(pre, post *State) {
	if pre == nil || pre.ContentEquals(post) {
		return
	}
	if len(h.stack) >= HistoryDepth {
		h.stack = h.stack[1:]
	}
	h.stack = append(h.stack, pre)
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (*State, bool) {
	if len(h.stack) == 0 {
		return nil, false
	}
	s := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return s, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.stack)
}
