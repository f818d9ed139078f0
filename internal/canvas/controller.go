package canvas

import (
	"time"

	"pastepad/internal/clipboard"
	"pastepad/pkg/geometry"
)

// session is the transient state of an in-progress gesture. Exactly one of
// the two variants exists while a pointer button is held.
type session interface {
	itemID() string
	snapshot() *State
}

type moveSession struct {
	id        string
	startPtr  geometry.Point2D
	startRect geometry.RectInt
	pre       *State
}

func (s *moveSession) itemID() string { return s.id }
func (s *moveSession) snapshot() *State { return s.pre }

type resizeSession struct {
	id        string
	handle    Handle
	startPtr  geometry.Point2D
	startRect geometry.RectInt
	pre       *State
}

func (s *resizeSession) itemID() string { return s.id }
func (s *resizeSession) snapshot() *State { return s.pre }

// Controller translates pointer and keyboard input into store mutations.
// It owns the active drag/resize session and the undo history. All methods
// must be called from the UI event thread; coordinates are canvas space.
type Controller struct {
	store   *Store
	history *History

	sess     session
	viewport geometry.Rect

	// Changed is invoked after every visible state mutation.
	Changed func()

	// now stamps item creation times. Replaceable in tests.
	now func() time.Time
}

// NewController creates a controller over the given store with a fresh
// history.
func NewController(store *Store) *Controller {
	return &Controller{
		store:    store,
		history:  NewHistory(),
		viewport: geometry.Rect{Width: Width, Height: Height},
		now:      time.Now,
	}
}

// Store returns the underlying state store.
func (c *Controller) Store() *Store {
	return c.store
}

// History returns the undo history.
func (c *Controller) History() *History {
	return c.history
}

// SessionActive reports whether a drag or resize gesture is in progress.
func (c *Controller) SessionActive() bool {
	return c.sess != nil
}

// SetViewport records the currently visible region of the canvas, in canvas
// coordinates. New items are placed around its center.
func (c *Controller) SetViewport(view geometry.Rect) {
	if view.Width > 0 && view.Height > 0 {
		c.viewport = view
	}
}

func (c *Controller) changed() {
	if c.Changed != nil {
		c.Changed()
	}
}

// PointerDown begins a gesture at p. A press on one of the selected item's
// resize handles (within handlePad) starts a resize; a press on an item
// body selects it, raises it to the front, and starts a move; a background
// press clears the selection.
func (c *Controller) PointerDown(p geometry.Point2D, handlePad float64) {
	if c.sess != nil {
		return
	}

	if sel := c.store.State().Selected(); sel != nil {
		if h, ok := handleAt(sel.Rect(), p, handlePad); ok {
			c.sess = &resizeSession{
				id:        sel.ID,
				handle:    h,
				startPtr:  p,
				startRect: sel.Rect(),
				pre:       c.store.State().Clone(),
			}
			return
		}
	}

	hit := c.store.State().TopmostAt(p)
	if hit == nil {
		c.store.ClearSelection()
		c.changed()
		return
	}

	pre := c.store.State().Clone()
	c.store.Select(hit.ID)
	c.sess = &moveSession{
		id:        hit.ID,
		startPtr:  p,
		startRect: hit.Rect(),
		pre:       pre,
	}
	c.changed()
}

// PointerMove updates the active gesture. Moves with no active session are
// ignored.
func (c *Controller) PointerMove(p geometry.Point2D) {
	if c.sess == nil {
		return
	}
	if c.store.State().Find(c.sess.itemID()) == nil {
		// Item vanished mid-session: abort without a history entry.
		c.sess = nil
		return
	}

	var rect geometry.RectInt
	switch s := c.sess.(type) {
	case *moveSession:
		rect = MoveRect(s.startRect, p.X-s.startPtr.X, p.Y-s.startPtr.Y)
	case *resizeSession:
		rect = ResizeRect(s.startRect, s.handle, p.X-s.startPtr.X, p.Y-s.startPtr.Y)
	}
	c.setItemRect(c.sess.itemID(), rect)
	c.changed()
}

// PointerUp commits the active gesture: the pre-session snapshot becomes an
// undo point when the gesture changed anything. If the item vanished the
// session is discarded without a history entry.
func (c *Controller) PointerUp() {
	sess := c.sess
	if sess == nil {
		return
	}
	c.sess = nil
	if c.store.State().Find(sess.itemID()) == nil {
		return
	}
	c.history.Push(sess.snapshot(), c.store.State())
}

// setItemRect replaces one item's geometry through a whole-state swap.
func (c *Controller) setItemRect(id string, r geometry.RectInt) {
	s := c.store.State().Clone()
	if it := s.Find(id); it != nil {
		it.SetRect(r)
		c.store.Replace(s)
	}
}

// AddItems places and inserts a batch of new items around the viewport
// center, pushing exactly one history entry for the whole batch. Drafts
// carry payload, natural dimensions, and initial W/H; position, z-index,
// id, and timestamp are assigned here. The last added item is selected.
func (c *Controller) AddItems(origin Origin, drafts []*Item) {
	if len(drafts) == 0 {
		return
	}
	pre := c.store.State().Clone()

	s := c.store.State().Clone()
	for _, it := range drafts {
		rect := PlaceRect(s, c.viewport, it.W, it.H)
		it.SetRect(rect)
		it.Origin = origin
		if it.ID == "" {
			it.ID = c.store.NewID()
		}
		if it.CreatedAt.IsZero() {
			it.CreatedAt = c.now()
		}
		it.Z = s.NextZ
		s.NextZ++
		s.Items = append(s.Items, it)
	}
	s.SelectedID = drafts[len(drafts)-1].ID
	evictOverCap(s)
	c.store.Replace(s)

	c.history.Push(pre, c.store.State())
	c.changed()
}

// DeleteSelected removes the selected item and pushes a history entry.
// Returns false when nothing is selected.
func (c *Controller) DeleteSelected() bool {
	sel := c.store.State().Selected()
	if sel == nil {
		return false
	}
	pre := c.store.State().Clone()
	c.store.Remove(sel.ID)
	c.history.Push(pre, c.store.State())
	c.changed()
	return true
}

// ClearItems removes every item from the canvas as one undoable action.
func (c *Controller) ClearItems() {
	if len(c.store.State().Items) == 0 {
		return
	}
	pre := c.store.State().Clone()
	c.store.Clear()
	c.history.Push(pre, c.store.State())
	c.changed()
}

// SelectNone clears the selection.
func (c *Controller) SelectNone() {
	c.store.ClearSelection()
	c.changed()
}

// Select selects the given item, raising it to the front.
func (c *Controller) Select(id string) {
	c.store.Select(id)
	c.changed()
}

// Undo restores the most recent snapshot. It is a no-op while a gesture is
// active or when the history is empty.
func (c *Controller) Undo() bool {
	if c.sess != nil {
		return false
	}
	s, ok := c.history.Pop()
	if !ok {
		return false
	}
	c.store.Replace(s)
	c.changed()
	return true
}

// CopySelected writes the selected item's PNG payload through the clipboard
// sink. The second return is false when there is no selection or a gesture
// is active; canvas state is never mutated.
func (c *Controller) CopySelected(sink clipboard.Writer) (clipboard.WriteResult, bool) {
	if c.sess != nil {
		return clipboard.WriteResult{}, false
	}
	sel := c.store.State().Selected()
	if sel == nil {
		return clipboard.WriteResult{}, false
	}
	return sink.WriteImage(sel.PNG), true
}

// HandleRects returns the eight resize-handle squares for an item
// rectangle, indexed by Handle, each side 2*pad.
func HandleRects(r geometry.RectInt, pad float64) [8]geometry.Rect {
	f := r.ToFloat()
	cx := f.X + f.Width/2
	cy := f.Y + f.Height/2
	centers := [8]geometry.Point2D{
		HandleN:  {X: cx, Y: f.Y},
		HandleNE: {X: f.X + f.Width, Y: f.Y},
		HandleE:  {X: f.X + f.Width, Y: cy},
		HandleSE: {X: f.X + f.Width, Y: f.Y + f.Height},
		HandleS:  {X: cx, Y: f.Y + f.Height},
		HandleSW: {X: f.X, Y: f.Y + f.Height},
		HandleW:  {X: f.X, Y: cy},
		HandleNW: {X: f.X, Y: f.Y},
	}
	var out [8]geometry.Rect
	for i, ctr := range centers {
		out[i] = geometry.Rect{X: ctr.X - pad, Y: ctr.Y - pad, Width: 2 * pad, Height: 2 * pad}
	}
	return out
}

// handleAt returns the handle under p, if any. Corners are tested before
// edges so a press near a corner prefers uniform scaling.
func handleAt(r geometry.RectInt, p geometry.Point2D, pad float64) (Handle, bool) {
	rects := HandleRects(r, pad)
	order := [8]Handle{
		HandleNE, HandleSE, HandleSW, HandleNW,
		HandleN, HandleE, HandleS, HandleW,
	}
	for _, h := range order {
		if rects[h].Contains(p) {
			return h, true
		}
	}
	return 0, false
}
