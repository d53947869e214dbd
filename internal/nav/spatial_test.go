package nav

import (
	"testing"

	"github.com/dshills/focuskit/internal/geom"
)

// gridViewport lays out [[A,B,C],[D,E,F]] with 100x50 cells.
func gridViewport() (*geom.MapViewport, []string) {
	vp := geom.NewMapViewport()
	ids := []string{"A", "B", "C", "D", "E", "F"}
	for i, id := range ids {
		col, row := float64(i%3), float64(i/3)
		vp.SetItem(id, geom.NewRect(col*100, row*50, col*100+100, row*50+50))
	}
	return vp, ids
}

func TestSpatialGrid(t *testing.T) {
	vp, items := gridViewport()
	opts := SpatialOptions{Tolerances: DefaultTolerances()}

	tests := []struct {
		from string
		dir  geom.Direction
		want string
	}{
		{"E", geom.DirRight, "F"},
		{"E", geom.DirLeft, "D"},
		{"E", geom.DirUp, "B"},
		{"E", geom.DirDown, "E"},
		{"A", geom.DirLeft, "A"},
		{"A", geom.DirUp, "A"},
		{"A", geom.DirDown, "D"},
		{"C", geom.DirRight, "C"},
		{"B", geom.DirHome, "A"},
		{"B", geom.DirEnd, "F"},
	}
	for _, tt := range tests {
		t.Run(tt.from+"-"+tt.dir.String(), func(t *testing.T) {
			got := Spatial(items, vp, tt.from, tt.dir, opts)
			if got.ID != tt.want {
				t.Errorf("Spatial(%s, %s) = %q, want %q", tt.from, tt.dir, got.ID, tt.want)
			}
		})
	}
}

func TestSpatialBoundaryBlocked(t *testing.T) {
	vp, items := gridViewport()
	got := Spatial(items, vp, "E", geom.DirDown, SpatialOptions{Tolerances: DefaultTolerances()})
	if !got.Blocked {
		t.Error("hold at boundary should report Blocked")
	}
	if !got.HasCross || got.Cross != 150 {
		t.Errorf("Cross = %v (%v), want 150", got.Cross, got.HasCross)
	}
}

func TestSpatialContainmentFiltering(t *testing.T) {
	vp := geom.NewMapViewport()
	vp.SetItem("top", geom.NewRect(0, 0, 100, 50))
	vp.SetItem("group", geom.NewRect(0, 100, 300, 200))
	vp.SetItem("c1", geom.NewRect(10, 110, 100, 190))
	vp.SetItem("c2", geom.NewRect(110, 110, 200, 190))
	items := []string{"top", "group", "c1", "c2"}

	got := Spatial(items, vp, "top", geom.DirDown, SpatialOptions{Tolerances: DefaultTolerances()})
	if got.ID != "c1" {
		t.Errorf("Spatial(top, down) = %q, want c1", got.ID)
	}

	// With no children beyond the current item the container is eligible.
	alone := Spatial([]string{"top", "group"}, vp, "top", geom.DirDown, SpatialOptions{Tolerances: DefaultTolerances()})
	if alone.ID != "group" {
		t.Errorf("Spatial(top, down) without children = %q, want group", alone.ID)
	}
}

func TestSpatialEdgeCases(t *testing.T) {
	vp, items := gridViewport()
	opts := SpatialOptions{Tolerances: DefaultTolerances()}

	if got := Spatial(items, vp, "", geom.DirRight, opts); got.ID != "A" {
		t.Errorf("no current = %q, want A", got.ID)
	}

	vp2, _ := gridViewport()
	delete(vp2.Items, "E")
	if got := Spatial(items, vp2, "E", geom.DirRight, opts); got.ID != "E" {
		t.Errorf("missing rect = %q, want E (hold)", got.ID)
	}

	if got := Spatial([]string{"A"}, vp, "A", geom.DirRight, opts); got.ID != "A" {
		t.Errorf("single item = %q, want A (hold)", got.ID)
	}
}

func TestSpatialStickyCoordinate(t *testing.T) {
	vp := geom.NewMapViewport()
	// A wide row between two three-cell rows.
	vp.SetItem("t0", geom.NewRect(0, 0, 100, 50))
	vp.SetItem("t1", geom.NewRect(100, 0, 200, 50))
	vp.SetItem("t2", geom.NewRect(200, 0, 300, 50))
	vp.SetItem("wide", geom.NewRect(0, 50, 300, 100))
	vp.SetItem("b0", geom.NewRect(0, 100, 100, 150))
	vp.SetItem("b1", geom.NewRect(100, 100, 200, 150))
	vp.SetItem("b2", geom.NewRect(200, 100, 300, 150))
	items := []string{"t0", "t1", "t2", "wide", "b0", "b1", "b2"}
	opts := SpatialOptions{Tolerances: DefaultTolerances()}

	first := Spatial(items, vp, "t2", geom.DirDown, opts)
	if first.ID != "wide" {
		t.Fatalf("t2 down = %q, want wide", first.ID)
	}

	opts.Sticky, opts.HasSticky = first.Cross, first.HasCross
	second := Spatial(items, vp, "wide", geom.DirDown, opts)
	if second.ID != "b2" {
		t.Errorf("wide down with sticky x = %q, want b2", second.ID)
	}

	plain := Spatial(items, vp, "wide", geom.DirDown, SpatialOptions{Tolerances: DefaultTolerances()})
	if plain.ID != "b1" {
		t.Errorf("wide down without sticky = %q, want b1", plain.ID)
	}
}
