package system

import (
	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/SynedraAcus/brutality/ecs"
	"github.com/SynedraAcus/brutality/ecs/component"
)

// LevelSetter is what a walk-in switch asks to perform the transition.
// The level manager implements it.
type LevelSetter interface {
	SetLevel(id string) error
}

// LevelSwitchSystem watches for the player entering an enabled switch
// region and requests the transition. The level manager disables the
// whole system for the duration of a transition, so a switch placed by
// the incoming level cannot fire while entities are still being set up.
type LevelSwitchSystem struct {
	world      *ecs.World
	playerName string
	setter     LevelSetter
	enabled    bool
	log        *logrus.Entry
}

func NewLevelSwitchSystem(world *ecs.World, playerName string, setter LevelSetter) (*LevelSwitchSystem, error) {
	if world == nil {
		return nil, errors.New("system: level switch needs a world")
	}
	if setter == nil {
		return nil, errors.New("system: level switch needs a level setter")
	}
	return &LevelSwitchSystem{
		world:      world,
		playerName: playerName,
		setter:     setter,
		enabled:    true,
		log:        logrus.WithField("module", "level_switch"),
	}, nil
}

func (ls *LevelSwitchSystem) Disable() { ls.enabled = false }
func (ls *LevelSwitchSystem) Enable()  { ls.enabled = true }

func (ls *LevelSwitchSystem) Update(dt float64) {
	if !ls.enabled {
		return
	}
	player, ok := ls.world.Named(ls.playerName)
	if !ok || ecs.Has(ls.world, player, component.DisabledComponent) {
		return
	}
	tr, ok := ecs.Get(ls.world, player, component.TransformComponent)
	if !ok {
		return
	}
	playerBB := cp.BB{
		L: tr.Pos.X,
		B: tr.Pos.Y,
		R: tr.Pos.X + tr.Size.X,
		T: tr.Pos.Y + tr.Size.Y,
	}

	for _, e := range ls.world.Query(component.LevelSwitchComponent.Kind()) {
		sw, ok := ecs.Get(ls.world, e, component.LevelSwitchComponent)
		if !ok || !sw.Enabled || sw.NextLevel == "" {
			continue
		}
		if !sw.Region.Intersects(playerBB) {
			continue
		}
		ls.log.WithField("next", sw.NextLevel).Info("switch triggered")
		if err := ls.setter.SetLevel(sw.NextLevel); err != nil {
			ls.log.WithError(err).WithField("next", sw.NextLevel).Error("transition failed")
		}
		// One transition per tick; the snapshot we iterate is stale now.
		return
	}
}
