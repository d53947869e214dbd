package geom

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 110, 70)
	if r.Right() != 110 || r.Bottom() != 70 {
		t.Errorf("edges = (%v, %v), want (110, 70)", r.Right(), r.Bottom())
	}
	c := r.Center()
	if c.X != 60 || c.Y != 45 {
		t.Errorf("Center() = %+v, want {60 45}", c)
	}
}

func TestRectContains(t *testing.T) {
	outer := NewRect(0, 0, 100, 100)
	inner := NewRect(10, 10, 50, 50)
	if !outer.Contains(inner) {
		t.Error("outer should contain inner")
	}
	if inner.Contains(outer) {
		t.Error("inner should not contain outer")
	}
	if !outer.Contains(outer) {
		t.Error("a rect contains itself")
	}
}

func TestRectBeyond(t *testing.T) {
	cur := NewRect(100, 100, 200, 150)
	tests := []struct {
		name  string
		other Rect
		dir   Direction
		want  bool
	}{
		{"right adjacent", NewRect(200, 100, 300, 150), DirRight, true},
		{"right overlapping", NewRect(150, 100, 300, 150), DirRight, false},
		{"left", NewRect(0, 100, 100, 150), DirLeft, true},
		{"down", NewRect(100, 150, 200, 200), DirDown, true},
		{"up", NewRect(100, 0, 200, 100), DirUp, true},
		{"up but below", NewRect(100, 150, 200, 200), DirUp, false},
		{"home never beyond", NewRect(0, 0, 10, 10), DirHome, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cur.Beyond(tt.other, tt.dir, 0); got != tt.want {
				t.Errorf("Beyond() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectAxisDistance(t *testing.T) {
	cur := NewRect(100, 100, 200, 150)
	if got := cur.AxisDistance(NewRect(230, 100, 300, 150), DirRight); got != 30 {
		t.Errorf("AxisDistance(right) = %v, want 30", got)
	}
	if got := cur.AxisDistance(NewRect(100, 40, 200, 90), DirUp); got != 10 {
		t.Errorf("AxisDistance(up) = %v, want 10", got)
	}
	if got := cur.AxisDistance(NewRect(150, 100, 300, 150), DirRight); got != 0 {
		t.Errorf("overlap AxisDistance = %v, want 0", got)
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight, DirHome, DirEnd} {
		if got := ParseDirection(d.String()); got != d {
			t.Errorf("ParseDirection(%q) = %v, want %v", d.String(), got, d)
		}
	}
	if ParseDirection("sideways") != DirNone {
		t.Error("unknown direction should parse to DirNone")
	}
}

func TestMapViewport(t *testing.T) {
	v := NewMapViewport()
	v.SetItem("a", NewRect(0, 0, 10, 10))
	if _, ok := v.ItemRect("a"); !ok {
		t.Error("expected item rect")
	}
	if _, ok := v.ZoneRect("a"); ok {
		t.Error("zone rect should be missing")
	}
	var nilView *MapViewport
	if _, ok := nilView.ItemRect("a"); ok {
		t.Error("nil viewport should report no geometry")
	}
}
