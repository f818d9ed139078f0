package canvas

import (
	"math"
	"testing"

	"pastepad/pkg/geometry"
)

func TestMoveRect(t *testing.T) {
	tests := []struct {
		name   string
		start  geometry.RectInt
		dx, dy float64
		want   geometry.RectInt
	}{
		{
			name:  "free move",
			start: geometry.RectInt{X: 100, Y: 100, Width: 50, Height: 50},
			dx:    10, dy: -20,
			want: geometry.RectInt{X: 110, Y: 80, Width: 50, Height: 50},
		},
		{
			name:  "clamp left top",
			start: geometry.RectInt{X: 5, Y: 5, Width: 50, Height: 50},
			dx:    -100, dy: -100,
			want: geometry.RectInt{X: 0, Y: 0, Width: 50, Height: 50},
		},
		{
			name:  "huge drag right clamps to canvas edge",
			start: geometry.RectInt{X: 300, Y: 300, Width: 120, Height: 80},
			dx:    2000, dy: 0,
			want: geometry.RectInt{X: Width - 120, Y: 300, Width: 120, Height: 80},
		},
		{
			name:  "fractional delta rounds",
			start: geometry.RectInt{X: 10, Y: 10, Width: 30, Height: 30},
			dx:    0.6, dy: 0.4,
			want: geometry.RectInt{X: 11, Y: 10, Width: 30, Height: 30},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveRect(tt.start, tt.dx, tt.dy)
			if got != tt.want {
				t.Errorf("MoveRect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMoveRectAlwaysInBounds(t *testing.T) {
	start := geometry.RectInt{X: 500, Y: 500, Width: 200, Height: 150}
	deltas := []struct{ dx, dy float64 }{
		{5000, 5000}, {-5000, -5000}, {1999, -3}, {0.4, 12345}, {-0.4, 0},
	}
	r := start
	for _, d := range deltas {
		r = MoveRect(r, d.dx, d.dy)
		if r.X < 0 || r.Y < 0 || r.X+r.Width > Width || r.Y+r.Height > Height {
			t.Fatalf("rect escaped canvas after delta %+v: %+v", d, r)
		}
		if r.Width != start.Width || r.Height != start.Height {
			t.Fatalf("move changed size: %+v", r)
		}
	}
}

func TestResizeEdge(t *testing.T) {
	start := geometry.RectInt{X: 100, Y: 100, Width: 200, Height: 100}

	tests := []struct {
		name   string
		handle Handle
		dx, dy float64
		want   geometry.RectInt
	}{
		{
			name:   "east grows width",
			handle: HandleE,
			dx:     50,
			want:   geometry.RectInt{X: 100, Y: 100, Width: 250, Height: 100},
		},
		{
			name:   "east shrink stops at min size",
			handle: HandleE,
			dx:     -500,
			want:   geometry.RectInt{X: 100, Y: 100, Width: MinSize, Height: 100},
		},
		{
			name:   "west keeps right edge fixed",
			handle: HandleW,
			dx:     30,
			want:   geometry.RectInt{X: 130, Y: 100, Width: 170, Height: 100},
		},
		{
			name:   "west min size re-derives position",
			handle: HandleW,
			dx:     500,
			want:   geometry.RectInt{X: 300 - MinSize, Y: 100, Width: MinSize, Height: 100},
		},
		{
			name:   "west clamps at canvas edge keeping right fixed",
			handle: HandleW,
			dx:     -500,
			want:   geometry.RectInt{X: 0, Y: 100, Width: 300, Height: 100},
		},
		{
			name:   "north grows upward",
			handle: HandleN,
			dy:     -40,
			want:   geometry.RectInt{X: 100, Y: 60, Width: 200, Height: 140},
		},
		{
			name:   "south clamps at canvas bottom",
			handle: HandleS,
			dy:     5000,
			want:   geometry.RectInt{X: 100, Y: 100, Width: 200, Height: Height - 100},
		},
		{
			name:   "east only touches width",
			handle: HandleE,
			dx:     10, dy: 99,
			want: geometry.RectInt{X: 100, Y: 100, Width: 210, Height: 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResizeRect(start, tt.handle, tt.dx, tt.dy)
			if got != tt.want {
				t.Errorf("ResizeRect(%v) = %+v, want %+v", tt.handle, got, tt.want)
			}
		})
	}
}

func TestResizeEdgeFractionalDeltaKeepsFixedEdge(t *testing.T) {
	// Items flush against the far canvas edge: a fractional pointer delta
	// (routine at non-integer zoom) must not round the fixed edge past the
	// bound.
	tests := []struct {
		name   string
		start  geometry.RectInt
		handle Handle
		dx, dy float64
		want   geometry.RectInt
	}{
		{
			name:   "west flush right",
			start:  geometry.RectInt{X: 10, Y: 0, Width: 1990, Height: 100},
			handle: HandleW,
			dx:     0.5,
			want:   geometry.RectInt{X: 11, Y: 0, Width: 1989, Height: 100},
		},
		{
			name:   "north flush bottom",
			start:  geometry.RectInt{X: 0, Y: 10, Width: 100, Height: 1990},
			handle: HandleN,
			dy:     0.5,
			want:   geometry.RectInt{X: 0, Y: 11, Width: 100, Height: 1989},
		},
		{
			name:   "west fractional grow",
			start:  geometry.RectInt{X: 10, Y: 0, Width: 1990, Height: 100},
			handle: HandleW,
			dx:     -0.5,
			want:   geometry.RectInt{X: 10, Y: 0, Width: 1990, Height: 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResizeRect(tt.start, tt.handle, tt.dx, tt.dy)
			if got != tt.want {
				t.Errorf("ResizeRect(%v) = %+v, want %+v", tt.handle, got, tt.want)
			}
			if got.X+got.Width > Width || got.Y+got.Height > Height {
				t.Errorf("rect exceeds canvas: %+v", got)
			}
		})
	}
}

func TestResizeEdgeAlwaysInBounds(t *testing.T) {
	start := geometry.RectInt{X: 10, Y: 10, Width: 1990, Height: 1990}
	deltas := []float64{0.5, -0.5, 0.25, 1.75, -3.3, 5000, -5000}

	for _, h := range []Handle{HandleN, HandleE, HandleS, HandleW} {
		for _, d := range deltas {
			got := ResizeRect(start, h, d, d)
			if got.X < 0 || got.Y < 0 || got.X+got.Width > Width || got.Y+got.Height > Height {
				t.Errorf("handle %v delta %v escaped canvas: %+v", h, d, got)
			}
			if got.Width < MinSize || got.Height < MinSize {
				t.Errorf("handle %v delta %v below min size: %+v", h, d, got)
			}
		}
	}
}

func TestResizeCornerPreservesAspect(t *testing.T) {
	starts := []geometry.RectInt{
		{X: 200, Y: 300, Width: 200, Height: 100},
		{X: 500, Y: 500, Width: 90, Height: 270},
		{X: 50, Y: 60, Width: 333, Height: 111},
	}
	handles := []Handle{HandleNE, HandleNW, HandleSE, HandleSW}
	deltas := []struct{ dx, dy float64 }{
		{80, 20}, {-50, -50}, {300, 10}, {-10, 400},
	}

	for _, start := range starts {
		aspect := float64(start.Width) / float64(start.Height)
		for _, h := range handles {
			for _, d := range deltas {
				got := ResizeRect(start, h, d.dx, d.dy)
				gotAspect := float64(got.Width) / float64(got.Height)
				// Integer rounding skews the ratio slightly on small sizes.
				if math.Abs(gotAspect-aspect)/aspect > 0.05 {
					t.Errorf("aspect not preserved: start %+v handle %v delta %+v -> %+v (aspect %.3f, want %.3f)",
						start, h, d, got, gotAspect, aspect)
				}
				if got.X < 0 || got.Y < 0 || got.X+got.Width > Width || got.Y+got.Height > Height {
					t.Errorf("corner resize escaped canvas: %+v", got)
				}
				if got.Width < MinSize || got.Height < MinSize {
					t.Errorf("corner resize below min size: %+v", got)
				}
			}
		}
	}
}

func TestResizeCornerAnchorFixed(t *testing.T) {
	start := geometry.RectInt{X: 100, Y: 100, Width: 100, Height: 50}

	tests := []struct {
		name    string
		handle  Handle
		anchorX int
		anchorY int
	}{
		{"se anchors top-left", HandleSE, 100, 100},
		{"ne anchors bottom-left", HandleNE, 100, 150},
		{"sw anchors top-right", HandleSW, 200, 100},
		{"nw anchors bottom-right", HandleNW, 200, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResizeRect(start, tt.handle, 60, 30)

			var ax, ay int
			switch tt.handle {
			case HandleSE:
				ax, ay = got.X, got.Y
			case HandleNE:
				ax, ay = got.X, got.Y+got.Height
			case HandleSW:
				ax, ay = got.X+got.Width, got.Y
			case HandleNW:
				ax, ay = got.X+got.Width, got.Y+got.Height
			}
			if ax != tt.anchorX || ay != tt.anchorY {
				t.Errorf("anchor moved: got (%d,%d), want (%d,%d)", ax, ay, tt.anchorX, tt.anchorY)
			}
		})
	}
}

func TestResizeCornerMaxAxisRatioWins(t *testing.T) {
	// Square 100x100 at (500,500), SE handle. Dragging 100 right but only
	// 10 down must scale by the width ratio (2.0), not the height ratio.
	start := geometry.RectInt{X: 500, Y: 500, Width: 100, Height: 100}
	got := ResizeRect(start, HandleSE, 100, 10)
	want := geometry.RectInt{X: 500, Y: 500, Width: 200, Height: 200}
	if got != want {
		t.Errorf("ResizeRect() = %+v, want %+v", got, want)
	}
}

func TestResizeCornerScaleClamped(t *testing.T) {
	// Anchor at (1800,1800); only 200px of canvas remain, so a huge drag
	// caps the scale at 2x for this 100x100 item.
	start := geometry.RectInt{X: 1800, Y: 1800, Width: 100, Height: 100}
	got := ResizeRect(start, HandleSE, 5000, 5000)
	want := geometry.RectInt{X: 1800, Y: 1800, Width: 200, Height: 200}
	if got != want {
		t.Errorf("grow clamp: ResizeRect() = %+v, want %+v", got, want)
	}

	// Collapsing drag floors at MinSize on both axes.
	got = ResizeRect(start, HandleSE, -90, -90)
	if got.Width != MinSize || got.Height != MinSize {
		t.Errorf("shrink floor: ResizeRect() = %+v, want %dx%d", got, MinSize, MinSize)
	}
}

func TestHandleString(t *testing.T) {
	if HandleNE.String() != "ne" || HandleW.String() != "w" {
		t.Errorf("Handle.String() unexpected: %s %s", HandleNE, HandleW)
	}
	if !HandleNE.Corner() || HandleN.Corner() {
		t.Error("Corner() misclassifies handles")
	}
}
