package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/SynedraAcus/brutality/ecs"
	"github.com/SynedraAcus/brutality/ecs/component"
	"github.com/SynedraAcus/brutality/ecs/entity"
)

// SpawnItem describes a future entity creation: the template is created
// at Pos once the player walks into Region, an optional When expression
// holds, and Delay seconds have passed since the trigger. Once
// registered the scheduler owns the descriptor.
type SpawnItem struct {
	Template string
	Pos      cp.Vector
	Region   cp.BB
	Config   entity.Config
	Delay    float64

	// When is an optional tengo expression over the player position
	// (px, py). The spawn only triggers while it evaluates true.
	When string
}

type pendingSpawn struct {
	item     SpawnItem
	compiled *tengo.Compiled
	armed    bool
	waited   float64
}

// Spawner schedules conditional entity creation. Level setup registers
// tutorial messages and enemy waves with it; the level manager clears it
// on teardown so no stale spawn fires into the next level.
type Spawner struct {
	world      *ecs.World
	factory    *entity.Factory
	playerName string
	pending    []*pendingSpawn
	enabled    bool
	log        *logrus.Entry
}

func NewSpawner(world *ecs.World, factory *entity.Factory, playerName string) (*Spawner, error) {
	if world == nil {
		return nil, errors.New("system: spawner needs a world")
	}
	if factory == nil {
		return nil, errors.New("system: spawner needs a factory")
	}
	if playerName == "" {
		return nil, errors.New("system: spawner needs the player entity name")
	}
	return &Spawner{
		world:      world,
		factory:    factory,
		playerName: playerName,
		enabled:    true,
		log:        logrus.WithField("module", "spawner"),
	}, nil
}

// AddSpawn registers one descriptor. A malformed When expression is a
// content error and is rejected here, not at trigger time.
func (s *Spawner) AddSpawn(item SpawnItem) error {
	p := &pendingSpawn{item: item}
	if item.When != "" {
		compiled, err := compileWhen(item.When)
		if err != nil {
			return errors.Wrapf(err, "system: spawn %q when-condition", item.Template)
		}
		p.compiled = compiled
	}
	s.pending = append(s.pending, p)
	return nil
}

// AddSpawnsIterable registers a batch; registration stops at the first
// bad descriptor.
func (s *Spawner) AddSpawnsIterable(items []SpawnItem) error {
	for _, item := range items {
		if err := s.AddSpawn(item); err != nil {
			return err
		}
	}
	return nil
}

// RemoveSpawns clears every pending descriptor, armed or not.
func (s *Spawner) RemoveSpawns() {
	s.pending = nil
}

// Pending reports how many descriptors wait for their trigger.
func (s *Spawner) Pending() int {
	return len(s.pending)
}

func (s *Spawner) Disable() { s.enabled = false }
func (s *Spawner) Enable()  { s.enabled = true }

// Update advances timers and fires due spawns. dt is in seconds.
func (s *Spawner) Update(dt float64) {
	if !s.enabled || len(s.pending) == 0 {
		return
	}
	pos, ok := s.playerPos()
	if !ok {
		return
	}

	remaining := s.pending[:0]
	for _, p := range s.pending {
		if !p.armed && p.item.Region.ContainsVect(pos) && s.whenHolds(p, pos) {
			p.armed = true
		}
		if !p.armed {
			remaining = append(remaining, p)
			continue
		}
		p.waited += dt
		if p.waited < p.item.Delay {
			remaining = append(remaining, p)
			continue
		}
		if _, err := s.factory.Create(p.item.Template, p.item.Pos, p.item.Config); err != nil {
			s.log.WithError(err).WithField("template", p.item.Template).Error("spawn failed")
			continue
		}
	}
	s.pending = remaining
}

func (s *Spawner) playerPos() (cp.Vector, bool) {
	player, ok := s.world.Named(s.playerName)
	if !ok {
		return cp.Vector{}, false
	}
	if ecs.Has(s.world, player, component.DisabledComponent) {
		return cp.Vector{}, false
	}
	tr, ok := ecs.Get(s.world, player, component.TransformComponent)
	if !ok {
		return cp.Vector{}, false
	}
	return tr.Pos, true
}

func (s *Spawner) whenHolds(p *pendingSpawn, pos cp.Vector) bool {
	if p.compiled == nil {
		return true
	}
	if err := p.compiled.Set("px", pos.X); err != nil {
		return false
	}
	if err := p.compiled.Set("py", pos.Y); err != nil {
		return false
	}
	if err := p.compiled.Run(); err != nil {
		s.log.WithError(err).WithField("template", p.item.Template).Error("when-condition failed")
		return false
	}
	return p.compiled.Get("ok").Bool()
}

func compileWhen(expr string) (*tengo.Compiled, error) {
	src := fmt.Sprintf("ok := (%s)", expr)
	script := tengo.NewScript([]byte(src))
	if err := script.Add("px", 0.0); err != nil {
		return nil, err
	}
	if err := script.Add("py", 0.0); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap("math"))
	return script.Compile()
}
