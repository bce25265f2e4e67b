package level

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"

	"github.com/SynedraAcus/brutality/ecs"
	"github.com/SynedraAcus/brutality/ecs/component"
	"github.com/SynedraAcus/brutality/ecs/entity"
	"github.com/SynedraAcus/brutality/ecs/system"
	"github.com/SynedraAcus/brutality/plot"
)

const testPlayer = "cop_1"

type rig struct {
	world      *ecs.World
	dispatcher *ecs.Dispatcher
	factory    *entity.Factory
	spawner    *system.Spawner
	switches   *system.LevelSwitchSystem
	manager    *Manager
	player     ecs.Entity

	bgSounds []any
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{
		world:      ecs.NewWorld(),
		dispatcher: ecs.NewDispatcher(),
	}
	var err error
	r.factory, err = entity.NewFactory(r.world, r.dispatcher)
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	r.spawner, err = system.NewSpawner(r.world, r.factory, testPlayer)
	if err != nil {
		t.Fatalf("NewSpawner: %v", err)
	}
	r.manager, err = NewManager(r.world, r.factory, r.spawner, r.dispatcher, testPlayer,
		WithRand(rand.New(rand.NewSource(7))),
		WithPlot(plot.NewManager(plot.WithRand(rand.New(rand.NewSource(7))))))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	r.switches, err = system.NewLevelSwitchSystem(r.world, testPlayer, r.manager)
	if err != nil {
		t.Fatalf("NewLevelSwitchSystem: %v", err)
	}
	r.manager.AttachSwitchSystem(r.switches)
	r.dispatcher.Subscribe(EventSetBgSound, func(ev ecs.Event) {
		r.bgSounds = append(r.bgSounds, ev.Value)
	})
	r.player, err = r.factory.Create("cop", cp.Vector{X: 10, Y: 30}, nil)
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	return r
}

func (r *rig) create(t *testing.T, template string, pos cp.Vector) ecs.Entity {
	t.Helper()
	e, err := r.factory.Create(template, pos, nil)
	if err != nil {
		t.Fatalf("create %s: %v", template, err)
	}
	return e
}

func (r *rig) giveItem(t *testing.T, template string) ecs.Entity {
	t.Helper()
	e := r.create(t, template, cp.Vector{X: 10, Y: 30})
	item, ok := ecs.Get(r.world, e, component.ItemComponent)
	if !ok {
		t.Fatalf("%s has no item component", template)
	}
	item.Owner = uint64(r.player)
	if err := ecs.Add(r.world, e, component.ItemComponent, item); err != nil {
		t.Fatalf("own %s: %v", template, err)
	}
	return e
}

func TestNewManagerRejectsNilCollaborators(t *testing.T) {
	w := ecs.NewWorld()
	d := ecs.NewDispatcher()
	f, _ := entity.NewFactory(w, d)
	s, _ := system.NewSpawner(w, f, testPlayer)

	cases := []struct {
		name string
		fn   func() (*Manager, error)
	}{
		{"world", func() (*Manager, error) { return NewManager(nil, f, s, d, testPlayer) }},
		{"factory", func() (*Manager, error) { return NewManager(w, nil, s, d, testPlayer) }},
		{"spawner", func() (*Manager, error) { return NewManager(w, f, nil, d, testPlayer) }},
		{"dispatcher", func() (*Manager, error) { return NewManager(w, f, s, nil, testPlayer) }},
		{"player name", func() (*Manager, error) { return NewManager(w, f, s, d, "") }},
	}
	for _, tc := range cases {
		if _, err := tc.fn(); err == nil {
			t.Errorf("nil %s accepted", tc.name)
		}
	}
}

func TestShouldRemoveRetentionPolicy(t *testing.T) {
	r := newRig(t)
	pistol := r.giveItem(t, "pistol")

	promised := r.create(t, "bandage", cp.Vector{X: 200, Y: 30})
	item, _ := ecs.Get(r.world, promised, component.ItemComponent)
	item.FutureOwner = testPlayer
	ecs.Add(r.world, promised, component.ItemComponent, item)

	barrel := r.create(t, "barrel", cp.Vector{X: 100, Y: 25})
	punk := r.create(t, "bottle_punk", cp.Vector{X: 150, Y: 30})
	droppedNunchaku := r.create(t, "nunchaku", cp.Vector{X: 160, Y: 30})
	leftHand, _ := r.world.Named("cop_1_hand_left")
	rightHand, _ := r.world.Named("cop_1_hand_right")

	cases := []struct {
		name   string
		e      ecs.Entity
		remove bool
	}{
		{"player", r.player, false},
		{"held item", pistol, false},
		{"promised item", promised, false},
		{"left hand", leftHand, false},
		{"right hand", rightHand, false},
		{"barrel", barrel, true},
		{"punk", punk, true},
		{"unowned item", droppedNunchaku, true},
	}
	for _, tc := range cases {
		if got := r.manager.ShouldRemove(tc.e); got != tc.remove {
			t.Errorf("ShouldRemove(%s) = %v, want %v", tc.name, got, tc.remove)
		}
	}
}

func TestShouldRemoveItemOwnedByAnother(t *testing.T) {
	r := newRig(t)
	punk := r.create(t, "bottle_punk", cp.Vector{X: 150, Y: 30})
	knife := r.create(t, "nunchaku", cp.Vector{X: 150, Y: 30})
	item, _ := ecs.Get(r.world, knife, component.ItemComponent)
	item.Owner = uint64(punk)
	ecs.Add(r.world, knife, component.ItemComponent, item)

	if !r.manager.ShouldRemove(knife) {
		t.Error("item held by a level NPC survived")
	}
}

func TestDestroyCurrentLevel(t *testing.T) {
	r := newRig(t)
	if err := r.manager.SetLevel("department"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	pistol := r.giveItem(t, "pistol")
	if r.spawner.Pending() == 0 {
		t.Fatal("department registered no spawns")
	}
	r.bgSounds = nil

	r.manager.DestroyCurrentLevel(false)

	want := map[ecs.Entity]bool{
		r.player: true,
		pistol:   true,
	}
	lh, _ := r.world.Named("cop_1_hand_left")
	rh, _ := r.world.Named("cop_1_hand_right")
	want[lh] = true
	want[rh] = true
	left := r.world.Entities()
	if len(left) != len(want) {
		t.Errorf("%d entities survived teardown, want %d: %v", len(left), len(want), names(r.world, left))
	}
	for _, e := range left {
		if !want[e] {
			t.Errorf("unexpected survivor %s", r.world.NameOf(e))
		}
	}

	if r.spawner.Pending() != 0 {
		t.Error("pending spawns survived teardown")
	}
	if len(r.bgSounds) != 1 || r.bgSounds[0] != nil {
		t.Errorf("bg sound events = %v, want [nil]", r.bgSounds)
	}
	if !ecs.Has(r.world, r.player, component.DisabledComponent) {
		t.Error("player not disabled during teardown")
	}
	if r.manager.CurrentLevel() != "" {
		t.Errorf("CurrentLevel = %q after teardown", r.manager.CurrentLevel())
	}

	// A second teardown is a no-op on an already-clean world.
	r.manager.DestroyCurrentLevel(false)
	if got := len(r.world.Entities()); got != len(want) {
		t.Errorf("second teardown changed the world: %d entities", got)
	}
}

func TestDestroyCurrentLevelWithPlayer(t *testing.T) {
	r := newRig(t)
	if err := r.manager.SetLevel("ghetto_test"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	r.giveItem(t, "pistol")

	r.manager.DestroyCurrentLevel(true)
	if got := r.world.Entities(); len(got) != 0 {
		t.Errorf("world not empty after full teardown: %v", names(r.world, got))
	}
}

func TestSetLevelMovesPlayerAndKeepsBelongings(t *testing.T) {
	r := newRig(t)
	if err := r.manager.SetLevel("ghetto_test"); err != nil {
		t.Fatalf("SetLevel(ghetto_test): %v", err)
	}
	pistol := r.giveItem(t, "pistol")
	if _, ok := r.world.Named("target_1"); !ok {
		t.Fatal("ghetto_test content missing")
	}

	if err := r.manager.SetLevel("department"); err != nil {
		t.Fatalf("SetLevel(department): %v", err)
	}

	if r.manager.CurrentLevel() != "department" {
		t.Errorf("CurrentLevel = %q", r.manager.CurrentLevel())
	}
	if _, ok := r.world.Named("target_1"); ok {
		t.Error("previous level content survived the transition")
	}
	if !r.world.IsAlive(pistol) {
		t.Error("held pistol lost in transition")
	}
	for _, hand := range []string{"cop_1_hand_left", "cop_1_hand_right"} {
		if _, ok := r.world.Named(hand); !ok {
			t.Errorf("%s lost in transition", hand)
		}
	}

	tr, _ := ecs.Get(r.world, r.player, component.TransformComponent)
	if tr.Pos.X != 10 || tr.Pos.Y != 20 {
		t.Errorf("player at (%v, %v), want department start (10, 20)", tr.Pos.X, tr.Pos.Y)
	}
	lvl, ok := ecs.Get(r.world, r.player, component.CurrentLevelComponent)
	if !ok || lvl.ID != "department" {
		t.Errorf("player level marker = %+v, %v", lvl, ok)
	}
	if ecs.Has(r.world, r.player, component.DisabledComponent) {
		t.Error("player still disabled after the new level came up")
	}
	if r.bgSounds[len(r.bgSounds)-1] != "supercop_bg" {
		t.Errorf("last bg sound = %v, want supercop_bg", r.bgSounds[len(r.bgSounds)-1])
	}
}

func TestSetLevelUnknownFailsBeforeTeardown(t *testing.T) {
	r := newRig(t)
	if err := r.manager.SetLevel("ghetto_test"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	before := len(r.world.Entities())

	for _, id := range []string{"atlantis", "noseparator", "lab_corridor", "ghetto_hostage"} {
		if err := r.manager.SetLevel(id); err == nil {
			t.Errorf("SetLevel(%q) succeeded", id)
		}
	}
	if got := len(r.world.Entities()); got != before {
		t.Errorf("failed transitions changed the world: %d entities, had %d", got, before)
	}
	if r.manager.CurrentLevel() != "ghetto_test" {
		t.Errorf("CurrentLevel = %q after failed transitions", r.manager.CurrentLevel())
	}
}

func TestSetLevelViaSwitchSystem(t *testing.T) {
	r := newRig(t)
	if err := r.manager.SetLevel("ghetto_test"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	// Step onto the department switch at (39, 23) 20x4.
	tr, _ := ecs.Get(r.world, r.player, component.TransformComponent)
	tr.Pos = cp.Vector{X: 45, Y: 24}
	ecs.Add(r.world, r.player, component.TransformComponent, tr)

	r.switches.Update(0.1)
	if r.manager.CurrentLevel() != "department" {
		t.Errorf("CurrentLevel = %q after walking into the switch", r.manager.CurrentLevel())
	}
}

func TestRegisterOverridesEmbeddedLevel(t *testing.T) {
	r := newRig(t)
	err := r.manager.Register(Def{
		Name:  "arena",
		Start: Vec{X: 30, Y: 25},
		Entities: []Placed{
			{Template: "barrel", Pos: Vec{X: 60, Y: 25}},
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !r.manager.Registered("arena") {
		t.Fatal("registered level not reported")
	}
	if err := r.manager.SetLevel("arena"); err != nil {
		t.Fatalf("SetLevel(arena): %v", err)
	}
	if _, ok := r.world.Named("barrel_1"); !ok {
		t.Error("registered level content missing")
	}
	if err := r.manager.Register(Def{}); err == nil {
		t.Error("nameless level registered")
	}
}

func TestTransitionLogsAvoidReservedLevelKey(t *testing.T) {
	hook := logrustest.NewGlobal()
	defer logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))

	r := newRig(t)
	if err := r.manager.SetLevel("ghetto_test"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	r.manager.DestroyCurrentLevel(false)

	sawID := false
	for _, e := range hook.AllEntries() {
		// "level" is logrus's own severity field; a data field with the
		// same name gets mangled to "fields.level" in the output.
		if _, clash := e.Data["level"]; clash {
			t.Errorf("log entry %q uses the reserved level key", e.Message)
		}
		if _, ok := e.Data["level_id"]; ok {
			sawID = true
		}
	}
	if !sawID {
		t.Error("no transition log carried a level_id field")
	}
}

func names(w *ecs.World, es []ecs.Entity) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, w.NameOf(e))
	}
	return out
}
