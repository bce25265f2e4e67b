package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/SynedraAcus/brutality/ecs"
	"github.com/SynedraAcus/brutality/ecs/component"
	"github.com/SynedraAcus/brutality/ecs/entity"
)

const testPlayer = "cop_1"

func newTestWorld(t *testing.T) (*ecs.World, *entity.Factory) {
	t.Helper()
	w := ecs.NewWorld()
	f, err := entity.NewFactory(w, ecs.NewDispatcher())
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	return w, f
}

func createPlayer(t *testing.T, f *entity.Factory, pos cp.Vector) ecs.Entity {
	t.Helper()
	e, err := f.Create("cop", pos, nil)
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	return e
}

func movePlayer(t *testing.T, w *ecs.World, pos cp.Vector) {
	t.Helper()
	player, ok := w.Named(testPlayer)
	if !ok {
		t.Fatal("player not in world")
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent)
	tr.Pos = pos
	if err := ecs.Add(w, player, component.TransformComponent, tr); err != nil {
		t.Fatalf("move player: %v", err)
	}
}
