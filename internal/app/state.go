// Package app provides application lifecycle management, configuration, and events.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"pastepad/internal/canvas"
	"pastepad/internal/clipboard"
	"pastepad/internal/ingest"
	"pastepad/internal/tasks"
)

// EventType identifies different application events.
type EventType int

const (
	EventCanvasChanged EventType = iota
	EventSelectionChanged
	EventTasksChanged
	EventStatus
	EventPinChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State is the application aggregate: the canvas controller, the task
// store, the clipboard bridge, and the event bus connecting them to the UI.
type State struct {
	mu sync.RWMutex

	Config *Config

	Canvas  *canvas.Controller
	Decoder *ingest.Decoder
	Clip    *clipboard.System
	Tasks   *tasks.Store

	listeners map[EventType][]EventListener
}

// NewState wires up the application aggregate. The task store may be nil
// when the database cannot be opened; the task panel degrades to a notice.
func NewState(cfg *Config) *State {
	s := &State{
		Config:    cfg,
		Decoder:   &ingest.Decoder{MaxBytes: cfg.IngestMaxBytes},
		Clip:      clipboard.NewSystem(),
		listeners: make(map[EventType][]EventListener),
	}

	s.Canvas = canvas.NewController(canvas.NewStore())
	s.Canvas.Changed = func() {
		s.Emit(EventCanvasChanged, nil)
	}

	db, err := tasks.Open(cfg.TasksDB)
	if err != nil {
		slog.Error("task database unavailable", "path", cfg.TasksDB, "error", err)
		return s
	}
	store, err := tasks.NewStore(db)
	if err != nil {
		slog.Error("task schema failed", "error", err)
		db.Close()
		return s
	}
	s.Tasks = store
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Status emits a transient status-bar message.
func (s *State) Status(format string, args ...interface{}) {
	s.Emit(EventStatus, fmt.Sprintf(format, args...))
}

// Paste reads the OS clipboard and adds its image to the canvas. An empty
// clipboard is reported as a status message, not an error.
func (s *State) Paste() {
	if s.Canvas.SessionActive() {
		return
	}
	img, err := s.Clip.ReadImage()
	switch {
	case errors.Is(err, clipboard.ErrEmpty):
		s.Status("Nothing to paste")
		return
	case errors.Is(err, clipboard.ErrUnavailable):
		s.Status("Clipboard unavailable")
		return
	case err != nil:
		s.Status("Could not read clipboard")
		return
	}

	item, err := s.Decoder.FromClipboard(img)
	if err != nil {
		slog.Debug("clipboard decode failed", "error", err)
		s.Status("Could not decode clipboard image")
		return
	}
	s.Canvas.AddItems(canvas.OriginPasted, []*canvas.Item{item})
	s.Status("Image pasted")
}

// Drop ingests a batch of dropped files. Failures are counted per item and
// never abort the rest of the batch; one undo entry covers all successes.
func (s *State) Drop(blobs []ingest.NamedBlob) {
	if len(blobs) == 0 {
		return
	}
	res := s.Decoder.Batch(blobs)
	if len(res.Items) > 0 {
		s.Canvas.AddItems(canvas.OriginDropped, res.Items)
	}
	switch {
	case res.Failed == 0:
		s.Status("%d added", len(res.Items))
	case len(res.Items) == 0:
		s.Status("%d failed", res.Failed)
	default:
		s.Status("%d added, %d failed", len(res.Items), res.Failed)
	}
}

// Copy writes the selected item to the OS clipboard, mapping each failure
// reason to its own status message.
func (s *State) Copy() {
	res, ok := s.Canvas.CopySelected(s.Clip)
	if !ok {
		return
	}
	if res.OK {
		s.Status("Image copied")
		return
	}
	switch res.Reason {
	case clipboard.ReasonInvalidPayload:
		s.Status("Copy failed: invalid image payload")
	case clipboard.ReasonDecodeFailed:
		s.Status("Copy failed: image could not be decoded")
	case clipboard.ReasonWriteFailed:
		s.Status("Copy failed: clipboard write error")
	default:
		s.Status("Copy failed")
	}
}

// Undo reverts the most recent canvas action.
func (s *State) Undo() {
	if s.Canvas.Undo() {
		s.Status("Undo")
	}
}

// DeleteSelected removes the selected canvas item.
func (s *State) DeleteSelected() {
	if s.Canvas.DeleteSelected() {
		s.Status("Item deleted")
	}
}
