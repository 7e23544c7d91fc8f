package geom

import "testing"

func TestPointArithmetic(t *testing.T) {
	a := Pt(3, -4)
	b := Pt(1, 2)

	if got := a.Add(b); got != Pt(4, -2) {
		t.Errorf("Add = %v, want %v", got, Pt(4, -2))
	}
	if got := a.Sub(b); got != Pt(2, -6) {
		t.Errorf("Sub = %v, want %v", got, Pt(2, -6))
	}
	if got := a.Scale(2); got != Pt(6, -8) {
		t.Errorf("Scale = %v, want %v", got, Pt(6, -8))
	}
	if got := a.Abs(); got != Pt(3, 4) {
		t.Errorf("Abs = %v, want %v", got, Pt(3, 4))
	}
	if a.IsZero() || !(Point{}).IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestRectContains(t *testing.T) {
	r := R(10, 10, 100, 50)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Pt(50, 30), true},
		{"top-left corner", Pt(10, 10), true},
		{"bottom-right corner", Pt(110, 60), true},
		{"left of", Pt(9.5, 30), false},
		{"below", Pt(50, 60.1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	viewport := R(0, 0, 320, 440)

	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"first row", R(0, 0, 320, 44), true},
		{"touching bottom edge", R(0, 440, 320, 44), false},
		{"straddling bottom edge", R(0, 430, 320, 44), true},
		{"above", R(0, -44, 320, 44), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Intersects(viewport); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectInscribed(t *testing.T) {
	outer := R(0, 0, 100, 100)
	if !R(10, 10, 20, 20).Inscribed(outer) {
		t.Error("inner rect should be inscribed")
	}
	if R(90, 90, 20, 20).Inscribed(outer) {
		t.Error("overflowing rect should not be inscribed")
	}
	if got := R(1, 2, 3, 4).Offset(Pt(1, 1)); got != R(2, 3, 3, 4) {
		t.Errorf("Offset = %v", got)
	}
}
