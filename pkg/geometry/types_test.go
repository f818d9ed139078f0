package geometry

import (
	"testing"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 100, 50)

	tests := []struct {
		name string
		p    Point2D
		want bool
	}{
		{"center", Point2D{X: 60, Y: 35}, true},
		{"top-left corner", Point2D{X: 10, Y: 10}, true},
		{"bottom-right corner", Point2D{X: 110, Y: 60}, true},
		{"left of rect", Point2D{X: 9, Y: 35}, false},
		{"below rect", Point2D{X: 60, Y: 61}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectRound(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want RectInt
	}{
		{"exact", Rect{X: 1, Y: 2, Width: 3, Height: 4}, RectInt{X: 1, Y: 2, Width: 3, Height: 4}},
		{"round down", Rect{X: 1.4, Y: 2.4, Width: 3.4, Height: 4.4}, RectInt{X: 1, Y: 2, Width: 3, Height: 4}},
		{"round half up", Rect{X: 1.5, Y: 2.5, Width: 3.5, Height: 4.5}, RectInt{X: 2, Y: 3, Width: 4, Height: 5}},
		{"negative half away from zero", Rect{X: -1.5, Y: -0.5, Width: 10, Height: 10}, RectInt{X: -2, Y: -1, Width: 10, Height: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Round(); got != tt.want {
				t.Errorf("Round() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectIntClampInto(t *testing.T) {
	bounds := RectInt{X: 0, Y: 0, Width: 2000, Height: 2000}

	tests := []struct {
		name string
		in   RectInt
		want RectInt
	}{
		{"inside untouched", RectInt{X: 100, Y: 100, Width: 50, Height: 50}, RectInt{X: 100, Y: 100, Width: 50, Height: 50}},
		{"pushed off left", RectInt{X: -30, Y: 10, Width: 50, Height: 50}, RectInt{X: 0, Y: 10, Width: 50, Height: 50}},
		{"pushed off bottom-right", RectInt{X: 1990, Y: 1990, Width: 50, Height: 50}, RectInt{X: 1950, Y: 1950, Width: 50, Height: 50}},
		{"wider than bounds", RectInt{X: -100, Y: 10, Width: 3000, Height: 50}, RectInt{X: 0, Y: 10, Width: 2000, Height: 50}},
		{"taller than bounds", RectInt{X: 10, Y: 500, Width: 50, Height: 9000}, RectInt{X: 10, Y: 0, Width: 50, Height: 2000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.ClampInto(bounds); got != tt.want {
				t.Errorf("ClampInto() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectIntersectsUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	c := NewRect(20, 20, 5, 5)

	if !a.Intersects(b) {
		t.Error("overlapping rects reported disjoint")
	}
	if a.Intersects(c) {
		t.Error("disjoint rects reported overlapping")
	}

	u := a.Union(b)
	want := Rect{X: 0, Y: 0, Width: 15, Height: 15}
	if u != want {
		t.Errorf("Union = %+v, want %+v", u, want)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5,0,10) = %v", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1,0,10) = %v", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11,0,10) = %v", got)
	}
	if got := ClampInt(99, -5, 5); got != 5 {
		t.Errorf("ClampInt(99,-5,5) = %d", got)
	}
}
