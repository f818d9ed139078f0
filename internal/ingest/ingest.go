// Package ingest normalizes image sources (dropped files, clipboard
// payloads) into canvas-ready items. Every source is decoded, re-encoded to
// PNG, and given an initial on-canvas size inside the standard band.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"

	"pastepad/internal/canvas"
	"pastepad/internal/clipboard"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Initial size band: the longer natural side is scaled into this range
// before the item first appears on the canvas.
const (
	MinInitialSide = 80
	MaxInitialSide = 420
)

// DefaultMaxBytes bounds how large a single source may be before decoding
// is refused.
const DefaultMaxBytes = 64 << 20

// ErrUnsupported is returned when the source bytes are not a decodable
// image.
var ErrUnsupported = errors.New("ingest: unsupported image data")

// ErrTooLarge is returned when the source exceeds the decode byte limit.
var ErrTooLarge = errors.New("ingest: source too large")

// NamedBlob is one entry of a batch: a display name plus raw bytes.
type NamedBlob struct {
	Name string
	Data []byte
}

// Result aggregates a batch: successfully decoded drafts plus the count of
// entries that failed. A failed entry never aborts its siblings.
type Result struct {
	Items  []*canvas.Item
	Failed int
}

// Decoder turns raw sources into canvas item drafts.
type Decoder struct {
	// MaxBytes is the per-source size limit. Zero means DefaultMaxBytes.
	MaxBytes int64
}

func (d *Decoder) maxBytes() int64 {
	if d.MaxBytes > 0 {
		return d.MaxBytes
	}
	return DefaultMaxBytes
}

// Decode produces an item draft from raw image bytes. The draft has the
// PNG payload, natural dimensions, and initial W/H set; position, id, and
// z-index are assigned at insertion.
func (d *Decoder) Decode(name string, data []byte) (*canvas.Item, error) {
	if int64(len(data)) > d.maxBytes() {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrTooLarge, name, len(data))
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupported, name, err)
	}
	bounds := img.Bounds()
	nw, nh := bounds.Dx(), bounds.Dy()
	if nw <= 0 || nh <= 0 {
		return nil, fmt.Errorf("%w: %s: empty image", ErrUnsupported, name)
	}

	payload := data
	if format != "png" {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("ingest: re-encode %s: %w", name, err)
		}
		payload = buf.Bytes()
	}

	w, h := InitialSize(nw, nh)
	return &canvas.Item{
		PNG:           payload,
		NaturalWidth:  nw,
		NaturalHeight: nh,
		W:             w,
		H:             h,
	}, nil
}

// FromClipboard normalizes a clipboard payload into an item draft.
func (d *Decoder) FromClipboard(img clipboard.Image) (*canvas.Item, error) {
	return d.Decode("clipboard", img.PNG)
}

// Batch decodes a set of sources, collecting drafts and counting failures.
func (d *Decoder) Batch(blobs []NamedBlob) Result {
	var res Result
	for _, b := range blobs {
		item, err := d.Decode(b.Name, b.Data)
		if err != nil {
			slog.Debug("ingest failed", "name", b.Name, "error", err)
			res.Failed++
			continue
		}
		res.Items = append(res.Items, item)
	}
	return res
}

// InitialSize computes the on-canvas size for an image with the given
// natural dimensions: the longer side is clamped into
// [MinInitialSide, MaxInitialSide] preserving aspect ratio, with no scaling
// when already inside the band, and both dimensions floored at
// canvas.MinSize.
func InitialSize(nw, nh int) (int, int) {
	longer := nw
	if nh > longer {
		longer = nh
	}

	scale := 1.0
	switch {
	case longer < MinInitialSide:
		scale = float64(MinInitialSide) / float64(longer)
	case longer > MaxInitialSide:
		scale = float64(MaxInitialSide) / float64(longer)
	}

	w := int(math.Round(float64(nw) * scale))
	h := int(math.Round(float64(nh) * scale))
	if w < canvas.MinSize {
		w = canvas.MinSize
	}
	if h < canvas.MinSize {
		h = canvas.MinSize
	}
	return w, h
}
