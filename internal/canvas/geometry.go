package canvas

import (
	"math"

	"pastepad/pkg/geometry"
)

// Handle identifies one of the eight resize affordances drawn on the
// selected item: four edges and four corners.
type Handle int

const (
	HandleN Handle = iota
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
	HandleNW
)

func (h Handle) String() string {
	switch h {
	case HandleN:
		return "n"
	case HandleNE:
		return "ne"
	case HandleE:
		return "e"
	case HandleSE:
		return "se"
	case HandleS:
		return "s"
	case HandleSW:
		return "sw"
	case HandleW:
		return "w"
	case HandleNW:
		return "nw"
	default:
		return "invalid"
	}
}

// Corner reports whether the handle is a corner (uniform-scale) handle.
func (h Handle) Corner() bool {
	switch h {
	case HandleNE, HandleSE, HandleSW, HandleNW:
		return true
	}
	return false
}

// MoveRect translates start by (dx, dy), clamping each axis so the
// rectangle stays fully inside the canvas. Size is unchanged.
func MoveRect(start geometry.RectInt, dx, dy float64) geometry.RectInt {
	x := int(math.Round(float64(start.X) + dx))
	y := int(math.Round(float64(start.Y) + dy))
	return geometry.RectInt{
		X:      geometry.ClampInt(x, 0, Width-start.Width),
		Y:      geometry.ClampInt(y, 0, Height-start.Height),
		Width:  start.Width,
		Height: start.Height,
	}
}

// ResizeRect applies a pointer delta to start through the given handle.
// Edge handles resize one axis (two for none here); corner handles scale
// uniformly about the opposite corner. The result is always inside the
// canvas with both dimensions at least MinSize.
func ResizeRect(start geometry.RectInt, h Handle, dx, dy float64) geometry.RectInt {
	if h.Corner() {
		return resizeCorner(start, h, dx, dy)
	}
	return resizeEdge(start, h, dx, dy)
}

// resizeEdge moves one edge of the rectangle, keeping the opposite edge
// fixed. The moving coordinate is rounded first and the size derived from
// the integer fixed edge, so the fixed edge never drifts under fractional
// deltas. The minimum-size floor re-derives the moving edge from the fixed
// one; canvas clamping shrinks on the growing side.
func resizeEdge(start geometry.RectInt, h Handle, dx, dy float64) geometry.RectInt {
	out := start

	switch h {
	case HandleE:
		w := int(math.Round(float64(start.Width) + dx))
		out.Width = geometry.ClampInt(w, MinSize, Width-start.X)
	case HandleW:
		right := start.X + start.Width
		x := int(math.Round(float64(start.X) + dx))
		out.X = geometry.ClampInt(x, 0, right-MinSize)
		out.Width = right - out.X
	case HandleS:
		hh := int(math.Round(float64(start.Height) + dy))
		out.Height = geometry.ClampInt(hh, MinSize, Height-start.Y)
	case HandleN:
		bottom := start.Y + start.Height
		y := int(math.Round(float64(start.Y) + dy))
		out.Y = geometry.ClampInt(y, 0, bottom-MinSize)
		out.Height = bottom - out.Y
	}

	return out
}

// resizeCorner scales the rectangle uniformly about the corner opposite the
// dragged handle. The scale is driven by whichever axis the pointer moved
// further along (the larger of the two axis ratios), preserving aspect.
func resizeCorner(start geometry.RectInt, h Handle, dx, dy float64) geometry.RectInt {
	sw := float64(start.Width)
	sh := float64(start.Height)

	// Anchor is the fixed opposite corner; the pointer starts at the
	// dragged corner and moves by (dx, dy).
	var anchorX, anchorY, cornerX, cornerY float64
	switch h {
	case HandleSE:
		anchorX, anchorY = float64(start.X), float64(start.Y)
		cornerX, cornerY = anchorX+sw, anchorY+sh
	case HandleNE:
		anchorX, anchorY = float64(start.X), float64(start.Y+start.Height)
		cornerX, cornerY = anchorX+sw, anchorY-sh
	case HandleSW:
		anchorX, anchorY = float64(start.X+start.Width), float64(start.Y)
		cornerX, cornerY = anchorX-sw, anchorY+sh
	case HandleNW:
		anchorX, anchorY = float64(start.X+start.Width), float64(start.Y+start.Height)
		cornerX, cornerY = anchorX-sw, anchorY-sh
	}

	rawW := math.Abs(cornerX + dx - anchorX)
	rawH := math.Abs(cornerY + dy - anchorY)

	scale := math.Max(rawW/sw, rawH/sh)

	minScale := math.Max(MinSize/sw, MinSize/sh)

	// Space available between the anchor and the canvas edge on the
	// growing side of each axis.
	availW := Width - anchorX
	if h == HandleSW || h == HandleNW {
		availW = anchorX
	}
	availH := float64(Height) - anchorY
	if h == HandleNE || h == HandleNW {
		availH = anchorY
	}
	maxScale := math.Min(availW/sw, availH/sh)

	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = minScale
	}
	scale = geometry.Clamp(scale, minScale, maxScale)

	w := math.Round(sw * scale)
	hh := math.Round(sh * scale)

	var x, y float64
	switch h {
	case HandleSE:
		x, y = anchorX, anchorY
	case HandleNE:
		x, y = anchorX, anchorY-hh
	case HandleSW:
		x, y = anchorX-w, anchorY
	case HandleNW:
		x, y = anchorX-w, anchorY-hh
	}

	return geometry.Rect{X: x, Y: y, Width: w, Height: hh}.Round()
}
