// Package clipboard bridges the canvas to the OS clipboard. Images travel
// as PNG bytes in both directions. The rest of the application depends only
// on the Reader and Writer contracts so tests can substitute fakes.
package clipboard

import (
	"bytes"
	"errors"
	"image/png"
	"log/slog"

	xclip "golang.design/x/clipboard"
)

// Image is a decoded clipboard payload: PNG bytes plus pixel dimensions.
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

// ErrEmpty is returned by ReadImage when the OS clipboard holds no image.
// It is a legitimate empty result, not a failure.
var ErrEmpty = errors.New("clipboard: no image")

// ErrUnavailable is returned when the clipboard backend could not be
// initialized (e.g. no display server).
var ErrUnavailable = errors.New("clipboard: unavailable")

// WriteReason classifies a failed clipboard write. The zero value means the
// backend gave no specific reason.
type WriteReason int

const (
	ReasonUnknown WriteReason = iota
	ReasonInvalidPayload
	ReasonDecodeFailed
	ReasonWriteFailed
)

func (r WriteReason) String() string {
	switch r {
	case ReasonInvalidPayload:
		return "invalid_payload"
	case ReasonDecodeFailed:
		return "decode_failed"
	case ReasonWriteFailed:
		return "write_failed"
	default:
		return "unknown"
	}
}

// WriteResult reports the outcome of a clipboard write.
type WriteResult struct {
	OK     bool
	Reason WriteReason
}

// Reader yields the current clipboard image, if any.
type Reader interface {
	ReadImage() (Image, error)
}

// Writer accepts a PNG payload for the OS clipboard.
type Writer interface {
	WriteImage(pngData []byte) WriteResult
}

// System is the golang.design/x/clipboard backed implementation of Reader
// and Writer.
type System struct {
	available bool
}

// NewSystem initializes the OS clipboard backend. When initialization fails
// the returned System is still usable: reads report ErrUnavailable and
// writes report ReasonWriteFailed.
func NewSystem() *System {
	s := &System{}
	if err := xclip.Init(); err != nil {
		slog.Warn("clipboard init failed", "error", err)
		return s
	}
	s.available = true
	return s
}

// Available reports whether the OS clipboard backend initialized.
func (s *System) Available() bool {
	return s.available
}

// ReadImage returns the clipboard image as PNG bytes with its decoded
// dimensions. ErrEmpty means there is nothing to paste.
func (s *System) ReadImage() (Image, error) {
	if !s.available {
		return Image{}, ErrUnavailable
	}
	data := xclip.Read(xclip.FmtImage)
	if len(data) == 0 {
		return Image{}, ErrEmpty
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, ErrEmpty
	}
	return Image{PNG: data, Width: cfg.Width, Height: cfg.Height}, nil
}

// WriteImage places a PNG payload on the OS clipboard. The payload is
// verified to be decodable PNG before the write is attempted.
func (s *System) WriteImage(pngData []byte) WriteResult {
	if len(pngData) == 0 {
		return WriteResult{Reason: ReasonInvalidPayload}
	}
	if _, err := png.DecodeConfig(bytes.NewReader(pngData)); err != nil {
		return WriteResult{Reason: ReasonDecodeFailed}
	}
	if !s.available {
		return WriteResult{Reason: ReasonWriteFailed}
	}
	xclip.Write(xclip.FmtImage, pngData)
	return WriteResult{OK: true}
}

var (
	_ Reader = (*System)(nil)
	_ Writer = (*System)(nil)
)
