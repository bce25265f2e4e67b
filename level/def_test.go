package level

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestLoadDefs(t *testing.T) {
	defs, err := LoadDefs()
	if err != nil {
		t.Fatalf("LoadDefs: %v", err)
	}
	for _, id := range []string{"ghetto_test", "ghetto_tutorial", "department"} {
		if _, ok := defs[id]; !ok {
			t.Errorf("embedded level %q missing", id)
		}
	}

	dept := defs["department"]
	if dept.Start != (Vec{X: 10, Y: 20}) {
		t.Errorf("department start = %+v", dept.Start)
	}
	if dept.BgSound != "supercop_bg" {
		t.Errorf("department bg sound = %q", dept.BgSound)
	}
	if len(dept.Entities) == 0 || len(dept.Spawns) == 0 {
		t.Errorf("department has %d entities and %d spawns", len(dept.Entities), len(dept.Spawns))
	}

	tut := defs["ghetto_tutorial"]
	if len(tut.Scatter) == 0 {
		t.Error("ghetto_tutorial has no scatter blocks")
	}
}

func TestScatterBlocksAreSatisfiable(t *testing.T) {
	defs, err := LoadDefs()
	if err != nil {
		t.Fatalf("LoadDefs: %v", err)
	}
	for id, def := range defs {
		for i, sc := range def.Scatter {
			if sc.Count < 2 {
				continue
			}
			// Count anchors pairwise MinDist apart need this much span.
			need := float64(sc.Count-1) * sc.MinDist
			if need > sc.MaxX {
				t.Errorf("%s scatter %d: %d anchors %v apart need a %v span, max_x is only %v",
					id, i, sc.Count, sc.MinDist, need, sc.MaxX)
			}
		}
	}
}

func TestLoadDefUnknown(t *testing.T) {
	if _, err := LoadDef("no_such_level"); err == nil {
		t.Fatal("missing data file accepted")
	}
}

func TestRegionBB(t *testing.T) {
	bb := Region{X: 20, Y: 20, W: 10, H: 20}.BB()
	want := cp.BB{L: 20, B: 20, R: 30, T: 40}
	if bb != want {
		t.Errorf("BB = %+v, want %+v", bb, want)
	}
	if !bb.ContainsVect(cp.Vector{X: 25, Y: 30}) {
		t.Error("point inside the region not contained")
	}
}
