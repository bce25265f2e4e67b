package system

import (
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/SynedraAcus/brutality/ecs"
	"github.com/SynedraAcus/brutality/ecs/component"
	"github.com/SynedraAcus/brutality/ecs/entity"
)

const monologueMessageLifetime = 4.0

// MonologueSystem lets talkative NPCs deliver their lines as floating
// message entities, one per interval, while the player stands close
// enough. Walking away pauses the monologue; it resumes on the same
// line when the player returns.
type MonologueSystem struct {
	world      *ecs.World
	factory    *entity.Factory
	playerName string
	log        *logrus.Entry
}

func NewMonologueSystem(world *ecs.World, factory *entity.Factory, playerName string) *MonologueSystem {
	return &MonologueSystem{
		world:      world,
		factory:    factory,
		playerName: playerName,
		log:        logrus.WithField("module", "monologue"),
	}
}

func (m *MonologueSystem) Update(dt float64) {
	player, ok := m.world.Named(m.playerName)
	if !ok || ecs.Has(m.world, player, component.DisabledComponent) {
		return
	}
	playerTr, ok := ecs.Get(m.world, player, component.TransformComponent)
	if !ok {
		return
	}

	for _, e := range m.world.Query(component.MonologueComponent.Kind(), component.TransformComponent.Kind()) {
		mono, _ := ecs.Get(m.world, e, component.MonologueComponent)
		if mono.Next >= len(mono.Lines) {
			continue
		}
		tr, _ := ecs.Get(m.world, e, component.TransformComponent)
		if tr.Pos.Distance(playerTr.Pos) > mono.TriggerDist {
			continue
		}
		mono.Waited += dt
		if mono.Waited >= mono.Interval {
			m.speak(e, tr.Pos, mono.Lines[mono.Next])
			mono.Next++
			mono.Waited = 0
		}
		_ = ecs.Add(m.world, e, component.MonologueComponent, mono)
	}
}

func (m *MonologueSystem) speak(speaker ecs.Entity, pos cp.Vector, line string) {
	_, err := m.factory.Create("message", cp.Vector{X: pos.X, Y: pos.Y - 3}, entity.Config{
		"text":              line,
		"destroy_condition": component.DestroyConditionTimeout,
		"lifetime":          monologueMessageLifetime,
		"vy":                -2.0,
	})
	if err != nil {
		m.log.WithError(err).WithField("speaker", m.world.NameOf(speaker)).Error("line failed")
	}
}
