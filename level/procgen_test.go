package level

import (
	"math"
	"testing"

	"github.com/SynedraAcus/brutality/ecs"
	"github.com/SynedraAcus/brutality/ecs/component"
)

func TestGenerateGhettoCorridor(t *testing.T) {
	r := newRig(t)
	if err := r.manager.SetLevel("ghetto_corridor"); err != nil {
		t.Fatalf("SetLevel(ghetto_corridor): %v", err)
	}

	tr, _ := ecs.Get(r.world, r.player, component.TransformComponent)
	if tr.Pos.X != genStartX || tr.Pos.Y != genStartY {
		t.Errorf("player start = (%v, %v), want (%v, %v)", tr.Pos.X, tr.Pos.Y, genStartX, genStartY)
	}
	if _, ok := r.world.Named("ghetto_bg_1"); !ok {
		t.Error("generated corridor has no backdrop")
	}
	if _, ok := r.world.Named("floor_1"); !ok {
		t.Error("generated corridor has no floor")
	}

	// The exit switch sits past the filled stretch, sends the player
	// where the plot says, and reaches the level edge.
	switches := r.world.Query(component.LevelSwitchComponent.Kind())
	if len(switches) != 1 {
		t.Fatalf("generated corridor has %d switches, want 1", len(switches))
	}
	sw, _ := ecs.Get(r.world, switches[0], component.LevelSwitchComponent)
	if sw.NextLevel != "dept_corridor" {
		t.Errorf("exit leads to %q, want dept_corridor", sw.NextLevel)
	}
	if sw.Region.L < ghettoFillLimit-100 || sw.Region.R != levelWidth {
		t.Errorf("exit region = %+v", sw.Region)
	}
}

func TestGenerateDeptCorridor(t *testing.T) {
	r := newRig(t)
	if err := r.manager.SetLevel("dept_corridor"); err != nil {
		t.Fatalf("SetLevel(dept_corridor): %v", err)
	}
	if _, ok := r.world.Named("dept_bg_1"); !ok {
		t.Error("generated corridor has no backdrop")
	}
	// Department rooms always have doorway walls.
	if _, ok := r.world.Named("dept_wall_inner_1"); !ok {
		t.Error("generated corridor has no room walls")
	}
	if got := len(r.world.Query(component.LevelSwitchComponent.Kind())); got != 1 {
		t.Errorf("generated corridor has %d switches, want 1", got)
	}
}

func TestGenerateIsDeterministicForASeed(t *testing.T) {
	roster := func() []string {
		r := newRig(t)
		if err := r.manager.SetLevel("ghetto_corridor"); err != nil {
			t.Fatalf("SetLevel: %v", err)
		}
		return names(r.world, r.world.Entities())
	}
	first := roster()
	second := roster()
	if len(first) != len(second) {
		t.Fatalf("same seed produced %d vs %d entities", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed diverged at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestScatterAnchorsRespectMinDistance(t *testing.T) {
	r := newRig(t)
	// 6 anchors 50 apart need a 250 span; 500 leaves room to spare.
	sc := ScatterDef{Count: 6, MinDist: 50, MaxX: 500}
	anchors := r.manager.scatterAnchors(sc)
	if len(anchors) != 6 {
		t.Fatalf("placed %d anchors, want 6", len(anchors))
	}
	for i, a := range anchors {
		for j, b := range anchors[:i] {
			if math.Abs(a-b) < sc.MinDist {
				t.Errorf("anchors %d and %d are %v apart, want >= %v", i, j, math.Abs(a-b), sc.MinDist)
			}
		}
	}
}

func TestScatterAnchorsBoundedOnImpossibleLayout(t *testing.T) {
	r := newRig(t)
	// 10 anchors with 50 spacing cannot fit in 100 units. The sampler
	// must give up on spacing rather than loop forever.
	sc := ScatterDef{Count: 10, MinDist: 50, MaxX: 100}
	anchors := r.manager.scatterAnchors(sc)
	if len(anchors) != 10 {
		t.Fatalf("placed %d anchors, want 10 even when spacing is unsatisfiable", len(anchors))
	}
}

func TestScatterPlacesAnchorsAndFillers(t *testing.T) {
	r := newRig(t)
	err := r.manager.scatter(ScatterDef{
		Count:     2,
		MinDist:   50,
		MaxX:      240,
		Anchor:    "garbage_bag",
		AnchorY:   18,
		Fillers:   []string{"can"},
		FillerMin: 2,
		FillerMax: 2,
		JitterX:   5,
		JitterY:   2,
		BaseY:     22,
	})
	if err != nil {
		t.Fatalf("scatter: %v", err)
	}
	if _, ok := r.world.Named("garbage_bag_2"); !ok {
		t.Error("anchor count off")
	}
	if _, ok := r.world.Named("can_4"); !ok {
		t.Error("filler count off")
	}
	if err := r.manager.scatter(ScatterDef{Count: 1}); err == nil {
		t.Error("scatter with neither anchor nor fillers accepted")
	}
}

func TestSplitLevelID(t *testing.T) {
	cases := []struct {
		id          string
		style, kind string
		ok          bool
	}{
		{"ghetto_corridor", "ghetto", "corridor", true},
		{"dept_corridor", "dept", "corridor", true},
		{"corridor", "", "", false},
		{"_corridor", "", "", false},
		{"ghetto_", "", "", false},
	}
	for _, tc := range cases {
		style, kind, ok := splitLevelID(tc.id)
		if style != tc.style || kind != tc.kind || ok != tc.ok {
			t.Errorf("splitLevelID(%q) = %q, %q, %v", tc.id, style, kind, ok)
		}
	}
}
