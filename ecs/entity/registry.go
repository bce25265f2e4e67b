package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/SynedraAcus/brutality/ecs"
	"github.com/SynedraAcus/brutality/ecs/component"
	"github.com/SynedraAcus/brutality/prefabs"
)

type buildContext struct {
	template string
	pos      cp.Vector
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"size":         addSize,
	"player":       addPlayer,
	"faction":      addFaction,
	"item":         addItem,
	"text":         addText,
	"ttl":          addTTL,
	"monologue":    addMonologue,
	"level_switch": addLevelSwitch,
}

// size goes first so region-shaped components can read the footprint.
var componentBuildOrder = []string{
	"size",
	"player",
	"faction",
	"item",
	"text",
	"ttl",
	"monologue",
	"level_switch",
}

func addSize(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SizeSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TransformComponent, component.Transform{
		Pos:  ctx.pos,
		Size: cp.Vector{X: spec.W, Y: spec.H},
	})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	if err := ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.CurrentLevelComponent, component.CurrentLevel{})
}

func addFaction(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.FactionSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.FactionComponent, component.Faction{Name: spec.Name})
}

func addItem(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ItemSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ItemComponent, component.Item{Handheld: spec.Handheld})
}

func addText(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TextSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TextComponent, component.Text{
		Value: spec.Value,
		Color: spec.Color,
	})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TTLComponent, component.TTL{
		DestroyCondition: spec.DestroyCondition,
		Lifetime:         spec.Lifetime,
	})
}

func addMonologue(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MonologueSpec](raw)
	if err != nil {
		return err
	}
	interval := spec.Interval
	if interval <= 0 {
		interval = 2.5
	}
	dist := spec.TriggerDist
	if dist <= 0 {
		dist = 30
	}
	return ecs.Add(w, e, component.MonologueComponent, component.Monologue{
		Lines:       spec.Lines,
		TriggerDist: dist,
		Interval:    interval,
	})
}

func addLevelSwitch(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LevelSwitchSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.LevelSwitchComponent, component.LevelSwitch{
		Region:    switchRegion(w, e, ctx),
		NextLevel: spec.NextLevel,
		Enabled:   true,
	})
}

func switchRegion(w *ecs.World, e ecs.Entity, ctx *buildContext) cp.BB {
	tr, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return cp.BB{L: ctx.pos.X, B: ctx.pos.Y, R: ctx.pos.X, T: ctx.pos.Y}
	}
	return cp.BB{
		L: tr.Pos.X,
		B: tr.Pos.Y,
		R: tr.Pos.X + tr.Size.X,
		T: tr.Pos.Y + tr.Size.Y,
	}
}
