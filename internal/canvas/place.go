package canvas

import (
	"math"

	"pastepad/pkg/geometry"
)

// PlaceOffsetStep is the diagonal distance between consecutive placements.
const PlaceOffsetStep = 24

// PlaceRect chooses a position for a new w x h item. Candidates cascade
// diagonally from the center of the visible viewport in PlaceOffsetStep
// increments; when the cascade would run off the canvas the offset resets
// and the next item lands at the exact center again. The state's PlaceStep
// counter is incremented on every call, reset or not, and the final
// rectangle is clamped fully inside the canvas.
//
// PlaceRect mutates st.PlaceStep; callers operate on a cloned state.
func PlaceRect(st *State, view geometry.Rect, w, h int) geometry.RectInt {
	center := view.Center()
	offset := float64(st.PlaceStep * PlaceOffsetStep)

	x := math.Round(center.X - float64(w)/2 + offset)
	y := math.Round(center.Y - float64(h)/2 + offset)

	if x < 0 || y < 0 || x+float64(w) > Width || y+float64(h) > Height {
		st.PlaceStep = 0
		x = math.Round(center.X - float64(w)/2)
		y = math.Round(center.Y - float64(h)/2)
	}
	st.PlaceStep++

	r := geometry.RectInt{X: int(x), Y: int(y), Width: w, Height: h}
	return r.ClampInto(geometry.RectInt{Width: Width, Height: Height})
}
