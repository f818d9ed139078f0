// Package canvas implements the scratch-canvas core: the item state store,
// placement, move/resize geometry, undo history, and the pointer interaction
// controller. Everything operates on a fixed 2000x2000 virtual surface.
package canvas

import (
	"time"

	"pastepad/pkg/geometry"
)

// Canvas dimensions and item limits. These are fixed properties of the
// surface, not configuration.
const (
	Width  = 2000
	Height = 2000

	// MaxItems caps the number of placed items; oldest items are evicted
	// beyond this.
	MaxItems = 50

	// MinSize is the smallest width or height an item may reach.
	MinSize = 24
)

// Origin records how an item arrived on the canvas.
type Origin int

const (
	OriginPasted Origin = iota
	OriginDropped
)

func (o Origin) String() string {
	switch o {
	case OriginPasted:
		return "pasted"
	case OriginDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Item is a single placed image. Position and size are canvas coordinates;
// Z is the stacking order (higher draws in front). The PNG payload is
// immutable once the item is created.
type Item struct {
	ID            string
	Origin        Origin
	PNG           []byte
	NaturalWidth  int
	NaturalHeight int
	X, Y          int
	W, H          int
	Z             int
	CreatedAt     time.Time
}

// Rect returns the item's current bounding rectangle.
func (it *Item) Rect() geometry.RectInt {
	return geometry.RectInt{X: it.X, Y: it.Y, Width: it.W, Height: it.H}
}

// SetRect replaces the item's geometry.
func (it *Item) SetRect(r geometry.RectInt) {
	it.X, it.Y, it.W, it.H = r.X, r.Y, r.Width, r.Height
}

// Clone returns an independent copy. The PNG slice is shared: payloads are
// never modified after creation, so sharing is safe and keeps snapshots cheap.
func (it *Item) Clone() *Item {
	c := *it
	return &c
}

// State is the whole mutable canvas aggregate: the placed items in insertion
// order, the current selection, and the two monotonic counters. Mutations go
// through Clone-and-replace so history snapshots never alias live state.
type State struct {
	Items      []*Item
	SelectedID string
	NextZ      int
	PlaceStep  int
}

// NewState returns an empty canvas state.
func NewState() *State {
	return &State{}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := &State{
		Items:      make([]*Item, len(s.Items)),
		SelectedID: s.SelectedID,
		NextZ:      s.NextZ,
		PlaceStep:  s.PlaceStep,
	}
	for i, it := range s.Items {
		c.Items[i] = it.Clone()
	}
	return c
}

// Find returns the item with the given id, or nil.
func (s *State) Find(id string) *Item {
	for _, it := range s.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Selected returns the currently selected item, or nil.
func (s *State) Selected() *Item {
	if s.SelectedID == "" {
		return nil
	}
	return s.Find(s.SelectedID)
}

// TopmostAt returns the frontmost item whose rectangle contains p, or nil.
func (s *State) TopmostAt(p geometry.Point2D) *Item {
	var best *Item
	for _, it := range s.Items {
		if !it.Rect().Contains(p) {
			continue
		}
		if best == nil || it.Z > best.Z {
			best = it
		}
	}
	return best
}

// maxZ returns the highest z-index among items, or -1 when empty.
func (s *State) maxZ() int {
	max := -1
	for _, it := range s.Items {
		if it.Z > max {
			max = it.Z
		}
	}
	return max
}

// ContentEquals reports whether two states hold the same content for undo
// purposes: items (id, payload identity, geometry, z) and both counters.
// Selection is deliberately excluded so selection-only changes never produce
// history entries.
func (s *State) ContentEquals(other *State) bool {
	if other == nil {
		return false
	}
	if s.NextZ != other.NextZ || s.PlaceStep != other.PlaceStep {
		return false
	}
	if len(s.Items) != len(other.Items) {
		return false
	}
	for i, a := range s.Items {
		b := other.Items[i]
		if a.ID != b.ID || a.X != b.X || a.Y != b.Y ||
			a.W != b.W || a.H != b.H || a.Z != b.Z {
			return false
		}
	}
	return true
}
