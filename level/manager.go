package level

import (
	"math/rand"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/SynedraAcus/brutality/ecs"
	"github.com/SynedraAcus/brutality/ecs/component"
	"github.com/SynedraAcus/brutality/ecs/entity"
	"github.com/SynedraAcus/brutality/ecs/system"
	"github.com/SynedraAcus/brutality/plot"
)

// EventSetBgSound is published with the level's background sound name on
// setup and with a nil value on teardown.
const EventSetBgSound = "set_bg_sound"

// EventLevelChanged is published with the new level id after a
// transition completes.
const EventLevelChanged = "level_changed"

// Manager owns the level lifecycle: it tears the current level down,
// instantiates the next one (from a registered Def or a generated
// corridor), and moves the player between them. It is the LevelSetter
// the switch system calls into.
type Manager struct {
	world      *ecs.World
	factory    *entity.Factory
	spawner    *system.Spawner
	dispatcher *ecs.Dispatcher
	playerName string

	switchSys *system.LevelSwitchSystem
	plot      *plot.Manager
	defs      map[string]Def
	current   string
	rng       *rand.Rand
	log       *logrus.Entry
}

// Option configures optional manager collaborators.
type Option func(*Manager)

// WithRand sets the random source used by scatter placement and
// corridor generation. Tests pass a seeded source.
func WithRand(rng *rand.Rand) Option {
	return func(m *Manager) { m.rng = rng }
}

// WithPlot wires the plot manager that supplies NPC chatter and the
// destination of generated corridor exits.
func WithPlot(p *plot.Manager) Option {
	return func(m *Manager) { m.plot = p }
}

// NewManager builds a manager over its four collaborators. Every
// collaborator is required; a nil one is a programming error reported
// immediately rather than at the first transition.
func NewManager(world *ecs.World, factory *entity.Factory, spawner *system.Spawner, dispatcher *ecs.Dispatcher, playerName string, opts ...Option) (*Manager, error) {
	if world == nil {
		return nil, errors.New("level: manager needs a world")
	}
	if factory == nil {
		return nil, errors.New("level: manager needs an entity factory")
	}
	if spawner == nil {
		return nil, errors.New("level: manager needs a spawner")
	}
	if dispatcher == nil {
		return nil, errors.New("level: manager needs a dispatcher")
	}
	if playerName == "" {
		return nil, errors.New("level: manager needs the player entity name")
	}
	defs, err := LoadDefs()
	if err != nil {
		return nil, err
	}
	m := &Manager{
		world:      world,
		factory:    factory,
		spawner:    spawner,
		dispatcher: dispatcher,
		playerName: playerName,
		defs:       defs,
		rng:        rand.New(rand.NewSource(rand.Int63())),
		log:        logrus.WithField("system", "level"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// AttachSwitchSystem registers the switch system so transitions can
// disable it during teardown and re-enable it once the new level is up.
// Attached after construction because the switch system itself needs the
// manager as its LevelSetter.
func (m *Manager) AttachSwitchSystem(ls *system.LevelSwitchSystem) {
	m.switchSys = ls
}

// Register adds (or replaces) a level definition at runtime, on top of
// the embedded data files.
func (m *Manager) Register(def Def) error {
	if def.Name == "" {
		return errors.New("level: cannot register a level without a name")
	}
	m.defs[def.Name] = def
	return nil
}

// Registered reports whether a level id has an authored definition.
func (m *Manager) Registered(id string) bool {
	_, ok := m.defs[id]
	return ok
}

// CurrentLevel returns the id of the level the player is in, or the
// empty string before the first SetLevel.
func (m *Manager) CurrentLevel() string {
	return m.current
}

// ShouldRemove is the retention predicate applied during teardown. The
// player survives, as does anything the player owns or is promised:
// held items, items earmarked for pickup, and the player's appendages.
// Everything else belongs to the level and goes.
func (m *Manager) ShouldRemove(e ecs.Entity) bool {
	player, alive := m.world.Named(m.playerName)
	if alive && e == player {
		return false
	}
	if item, has := ecs.Get(m.world, e, component.ItemComponent); has {
		if alive && item.Owner == uint64(player) {
			return false
		}
		if item.FutureOwner == m.playerName {
			return false
		}
	}
	if app, has := ecs.Get(m.world, e, component.AppendageComponent); has {
		if alive && app.Owner == uint64(player) {
			return false
		}
	}
	// Naming fallback for entities created outside the factory.
	if strings.Contains(m.world.NameOf(e), m.playerName+"_hand") {
		return false
	}
	return true
}

// DestroyCurrentLevel removes the current level from the world:
// level-owned entities, pending spawns, background sound, and switch
// activity. The player and their belongings keep existing but sit
// disabled until the next level enables them again. With destroyPlayer
// the retention policy is bypassed and the world is emptied outright.
func (m *Manager) DestroyCurrentLevel(destroyPlayer bool) {
	pred := m.ShouldRemove
	if destroyPlayer {
		pred = func(ecs.Entity) bool { return true }
	}
	removed := 0
	for _, e := range m.world.FilterEntities(pred) {
		if m.world.DestroyEntity(e) {
			removed++
		}
	}
	m.dispatcher.Publish(ecs.Event{Type: EventSetBgSound, Value: nil})
	m.spawner.RemoveSpawns()
	if m.switchSys != nil {
		m.switchSys.Disable()
	}
	if !destroyPlayer {
		m.disablePlayer()
	}
	m.log.WithFields(logrus.Fields{
		"level_id": m.current,
		"removed":  removed,
	}).Debug("level destroyed")
	m.current = ""
}

// SetLevel transitions to the level with the given id. An authored
// definition wins; otherwise the id is parsed as "<style>_<kind>" and a
// corridor is generated. An id that is neither registered nor parseable
// fails before anything is torn down.
func (m *Manager) SetLevel(id string) error {
	def, registered := m.defs[id]
	var style, kind string
	if !registered {
		var ok bool
		style, kind, ok = splitLevelID(id)
		if !ok || !genStyles[style] || !genKinds[kind] {
			return errors.Errorf("level: unknown level %q", id)
		}
	}

	m.log.WithField("level_id", id).Info("switching level")
	m.DestroyCurrentLevel(false)

	var start cp.Vector
	var err error
	if registered {
		start = def.Start.Vector()
		err = m.setup(def)
	} else {
		start, err = m.generate(style, kind)
	}
	if err != nil {
		return errors.Wrapf(err, "level: set up %q", id)
	}

	if err := m.placePlayer(start, id); err != nil {
		return err
	}
	m.current = id
	if m.switchSys != nil {
		m.switchSys.Enable()
	}
	m.dispatcher.Publish(ecs.Event{Type: EventLevelChanged, Value: id})
	return nil
}

// splitLevelID parses a generated-level id of the form "<style>_<kind>",
// e.g. "ghetto_corridor".
func splitLevelID(id string) (style, kind string, ok bool) {
	i := strings.LastIndex(id, "_")
	if i <= 0 || i == len(id)-1 {
		return "", "", false
	}
	return id[:i], id[i+1:], true
}

func (m *Manager) player() (ecs.Entity, error) {
	e, ok := m.world.Named(m.playerName)
	if !ok {
		return 0, errors.Errorf("level: player entity %q not in world", m.playerName)
	}
	return e, nil
}

func (m *Manager) placePlayer(start cp.Vector, id string) error {
	player, err := m.player()
	if err != nil {
		return err
	}
	tr, ok := ecs.Get(m.world, player, component.TransformComponent)
	if !ok {
		return errors.Errorf("level: player %q has no transform", m.playerName)
	}
	tr.Pos = start
	if err := ecs.Add(m.world, player, component.TransformComponent, tr); err != nil {
		return err
	}
	if err := ecs.Add(m.world, player, component.CurrentLevelComponent, component.CurrentLevel{ID: id}); err != nil {
		return err
	}
	ecs.Remove(m.world, player, component.DisabledComponent)
	return nil
}

func (m *Manager) disablePlayer() {
	player, ok := m.world.Named(m.playerName)
	if !ok {
		return
	}
	// Best effort: the player may legitimately be gone already.
	_ = ecs.Add(m.world, player, component.DisabledComponent, component.Disabled{})
}
