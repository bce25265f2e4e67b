package main

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/SynedraAcus/brutality/ecs"
	"github.com/SynedraAcus/brutality/ecs/component"
	"github.com/SynedraAcus/brutality/ecs/entity"
	"github.com/SynedraAcus/brutality/ecs/system"
	"github.com/SynedraAcus/brutality/level"
	"github.com/SynedraAcus/brutality/plot"
)

const (
	playerName     = "cop_1"
	playerTemplate = "cop"
	stepSeconds    = 1.0 / 30.0

	// Scripted demo walk speed, chars per second.
	walkSpeed = 15.0
)

// Game wires the world, the systems, and the level manager together and
// drives them with a fixed-step loop. There is no renderer; the loop
// walks the player rightward so spawns and level switches fire, and the
// log is the output.
type Game struct {
	world      *ecs.World
	dispatcher *ecs.Dispatcher
	factory    *entity.Factory
	spawner    *system.Spawner
	ttl        *system.TTLSystem
	monologue  *system.MonologueSystem
	switches   *system.LevelSwitchSystem
	manager    *level.Manager

	watcher *prefabWatcher
	log     *logrus.Entry
}

func NewGame(levelName string, seed int64, watch bool) (*Game, error) {
	world := ecs.NewWorld()
	dispatcher := ecs.NewDispatcher()
	factory, err := entity.NewFactory(world, dispatcher)
	if err != nil {
		return nil, err
	}
	spawner, err := system.NewSpawner(world, factory, playerName)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	plotMgr := plot.NewManager(plot.WithRand(rng))
	manager, err := level.NewManager(world, factory, spawner, dispatcher, playerName,
		level.WithRand(rng), level.WithPlot(plotMgr))
	if err != nil {
		return nil, err
	}
	switches, err := system.NewLevelSwitchSystem(world, playerName, manager)
	if err != nil {
		return nil, err
	}
	manager.AttachSwitchSystem(switches)

	g := &Game{
		world:      world,
		dispatcher: dispatcher,
		factory:    factory,
		spawner:    spawner,
		ttl:        system.NewTTLSystem(world),
		monologue:  system.NewMonologueSystem(world, factory, playerName),
		switches:   switches,
		manager:    manager,
		log:        logrus.WithField("system", "game"),
	}

	dispatcher.Subscribe(level.EventSetBgSound, func(ev ecs.Event) {
		g.log.WithField("sound", ev.Value).Debug("background sound changed")
	})
	dispatcher.Subscribe(level.EventLevelChanged, func(ev ecs.Event) {
		g.log.WithField("level_id", ev.Value).Info("entered level")
	})

	if _, err := factory.Create(playerTemplate, cp.Vector{X: 10, Y: 30}, nil); err != nil {
		return nil, errors.Wrap(err, "create player")
	}
	if err := manager.SetLevel(levelName); err != nil {
		return nil, err
	}

	if watch {
		g.watcher, err = newPrefabWatcher(factory)
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Run advances the simulation by fixed steps. The player walks right
// until the frame budget runs out; 0 frames means run until the player
// is gone.
func (g *Game) Run(frames int) error {
	for frame := 0; frames == 0 || frame < frames; frame++ {
		if err := g.step(); err != nil {
			return err
		}
		player, ok := g.world.Named(playerName)
		if !ok {
			g.log.Info("player gone, stopping")
			return nil
		}
		if frame%300 == 0 {
			tr, _ := ecs.Get(g.world, player, component.TransformComponent)
			g.log.WithFields(logrus.Fields{
				"frame":    frame,
				"level_id": g.manager.CurrentLevel(),
				"x":        tr.Pos.X,
				"y":        tr.Pos.Y,
			}).Info("tick")
		}
	}
	return nil
}

func (g *Game) step() error {
	g.walkPlayer(stepSeconds)
	g.spawner.Update(stepSeconds)
	g.monologue.Update(stepSeconds)
	g.ttl.Update(stepSeconds)
	g.switches.Update(stepSeconds)
	if g.watcher != nil {
		g.watcher.poll()
	}
	return nil
}

// walkPlayer scripts the demo input: walk right while enabled.
func (g *Game) walkPlayer(dt float64) {
	player, ok := g.world.Named(playerName)
	if !ok || g.world.HasComponent(player, component.DisabledComponent.Kind()) {
		return
	}
	tr, ok := ecs.Get(g.world, player, component.TransformComponent)
	if !ok {
		return
	}
	tr.Pos.X += walkSpeed * dt
	_ = ecs.Add(g.world, player, component.TransformComponent, tr)
}

func (g *Game) Close() {
	if g.watcher != nil {
		g.watcher.close()
	}
}
