package canvas

import (
	"sort"

	"github.com/google/uuid"
)

// Store owns the live canvas state. All mutations replace the state
// wholesale: callers read through State() and must treat the result as
// immutable; mutating operations clone, modify the clone, and swap.
//
// The store is single-threaded by construction (every mutation happens on
// the UI event thread), so there is no lock.
type Store struct {
	state *State

	// NewID generates item identifiers. Replaceable in tests.
	NewID func() string
}

// NewStore creates a store holding an empty canvas.
func NewStore() *Store {
	return &Store{
		state: NewState(),
		NewID: uuid.NewString,
	}
}

// State returns the live state. Callers must not mutate it.
func (st *Store) State() *State {
	return st.state
}

// Replace swaps in a new state wholesale. Used by mutations and by undo.
func (st *Store) Replace(s *State) {
	st.state = s
}

// Insert appends items, assigning each the next z-index, then enforces the
// item cap by evicting the oldest items (smallest CreatedAt, insertion order
// on ties). Selection is cleared if an evicted item was selected.
func (st *Store) Insert(items ...*Item) {
	if len(items) == 0 {
		return
	}
	s := st.state.Clone()
	for _, it := range items {
		it.Z = s.NextZ
		s.NextZ++
		s.Items = append(s.Items, it)
	}
	evictOverCap(s)
	st.state = s
}

// evictOverCap removes the oldest items until the cap is met.
func evictOverCap(s *State) {
	for len(s.Items) > MaxItems {
		oldest := 0
		for i := 1; i < len(s.Items); i++ {
			if s.Items[i].CreatedAt.Before(s.Items[oldest].CreatedAt) {
				oldest = i
			}
		}
		if s.Items[oldest].ID == s.SelectedID {
			s.SelectedID = ""
		}
		s.Items = append(s.Items[:oldest], s.Items[oldest+1:]...)
	}
}

// Select sets the selection and raises the item to the front. When the item
// is already topmost its z-index is left alone and the counter is not
// consumed, so repeated clicks do not grow NextZ without bound.
func (st *Store) Select(id string) {
	cur := st.state.Find(id)
	if cur == nil {
		return
	}
	if st.state.SelectedID == id && cur.Z == st.state.maxZ() {
		return
	}
	s := st.state.Clone()
	s.SelectedID = id
	it := s.Find(id)
	if it.Z != s.maxZ() {
		it.Z = s.NextZ
		s.NextZ++
	}
	st.state = s
}

// ClearSelection deselects any selected item.
func (st *Store) ClearSelection() {
	if st.state.SelectedID == "" {
		return
	}
	s := st.state.Clone()
	s.SelectedID = ""
	st.state = s
}

// Remove deletes the item with the given id, clearing selection if it was
// selected. Returns false if no such item exists.
func (st *Store) Remove(id string) bool {
	if st.state.Find(id) == nil {
		return false
	}
	s := st.state.Clone()
	for i, it := range s.Items {
		if it.ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			break
		}
	}
	if s.SelectedID == id {
		s.SelectedID = ""
	}
	st.state = s
	return true
}

// Clear removes every item and resets selection. Counters are kept so z
// ordering stays monotonic across clears within a session.
func (st *Store) Clear() {
	if len(st.state.Items) == 0 {
		return
	}
	s := st.state.Clone()
	s.Items = nil
	s.SelectedID = ""
	st.state = s
}

// DrawOrder returns the items sorted back-to-front for rendering.
func (st *Store) DrawOrder() []*Item {
	items := make([]*Item, len(st.state.Items))
	copy(items, st.state.Items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Z < items[j].Z
	})
	return items
}
