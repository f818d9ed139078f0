package board

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"

	"pastepad/internal/canvas"
	"pastepad/pkg/geometry"

	xdraw "golang.org/x/image/draw"
)

const checkerCell = 16

var (
	checkerLight  = color.RGBA{R: 0x2A, G: 0x2A, B: 0x2E, A: 0xFF}
	checkerDark   = color.RGBA{R: 0x22, G: 0x22, B: 0x26, A: 0xFF}
	selectionBlue = color.RGBA{R: 0x35, G: 0x6B, B: 0xC4, A: 0xFF}
	handleFill    = color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF}
)

// draw is the raster drawing function. It composites the visible items in
// ascending z-order at the current zoom, then draws the selection border
// and resize handles on top.
func (b *Board) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	b.drawCheckerboard(output, w, h)

	state := b.ctrl.Store().State()
	for _, it := range b.ctrl.Store().DrawOrder() {
		b.drawItem(output, it)
	}

	if sel := state.Selected(); sel != nil {
		b.drawSelection(output, sel)
	}

	return output
}

func (b *Board) drawCheckerboard(dst *image.RGBA, w, h int) {
	cell := int(math.Max(checkerCell*b.zoom, 4))
	for y := 0; y < h; y++ {
		cy := (y / cell) & 1
		for x := 0; x < w; x++ {
			if ((x/cell)&1) == cy {
				dst.SetRGBA(x, y, checkerLight)
			} else {
				dst.SetRGBA(x, y, checkerDark)
			}
		}
	}
}

// drawItem scales the item's decoded image into its zoomed canvas
// rectangle.
func (b *Board) drawItem(dst *image.RGBA, it *canvas.Item) {
	src := b.cache.Get(it)
	if src == nil {
		return
	}
	target := image.Rect(
		int(float64(it.X)*b.zoom),
		int(float64(it.Y)*b.zoom),
		int(float64(it.X+it.W)*b.zoom),
		int(float64(it.Y+it.H)*b.zoom),
	)
	if target.Empty() || !target.Overlaps(dst.Bounds()) {
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, target, src, src.Bounds(), xdraw.Over, nil)
}

// drawSelection draws the selection border and the eight resize handles.
func (b *Board) drawSelection(dst *image.RGBA, it *canvas.Item) {
	r := image.Rect(
		int(float64(it.X)*b.zoom),
		int(float64(it.Y)*b.zoom),
		int(float64(it.X+it.W)*b.zoom),
		int(float64(it.Y+it.H)*b.zoom),
	)
	drawRectOutline(dst, r, selectionBlue)

	pad := handleScreenPad / b.zoom
	for _, hr := range canvas.HandleRects(it.Rect(), pad) {
		sq := image.Rect(
			int(hr.X*b.zoom),
			int(hr.Y*b.zoom),
			int((hr.X+hr.Width)*b.zoom),
			int((hr.Y+hr.Height)*b.zoom),
		)
		fillRect(dst, sq, handleFill)
		drawRectOutline(dst, sq, selectionBlue)
	}
}

func drawRectOutline(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.SetRGBA(x, r.Min.Y, c)
		dst.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.SetRGBA(r.Min.X, y, c)
		dst.SetRGBA(r.Max.X-1, y, c)
	}
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
	}
}

// Get decodes and caches the item's payload.
func (c *imageCache) Get(it *canvas.Item) image.Image {
	if img, ok := c.images[it.ID]; ok {
		return img
	}
	img, err := png.Decode(bytes.NewReader(it.PNG))
	if err != nil {
		slog.Debug("item payload decode failed", "id", it.ID, "error", err)
		return nil
	}
	c.images[it.ID] = img
	return img
}

// ItemScreenRect returns the zoomed screen rectangle for an item rectangle.
// Exposed for coordinate-mapping tests.
func ItemScreenRect(r geometry.RectInt, zoom float64) image.Rectangle {
	return image.Rect(
		int(float64(r.X)*zoom),
		int(float64(r.Y)*zoom),
		int(float64(r.X+r.Width)*zoom),
		int(float64(r.Y+r.Height)*zoom),
	)
}
