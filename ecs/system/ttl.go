package system

import (
	"github.com/SynedraAcus/brutality/ecs"
	"github.com/SynedraAcus/brutality/ecs/component"
)

// TTLSystem moves free-floating entities and destroys the ones whose
// lifetime ran out. Tutorial messages are the main customer: they drift
// up (vy=-2) for five seconds and vanish.
type TTLSystem struct {
	world *ecs.World
}

func NewTTLSystem(world *ecs.World) *TTLSystem {
	return &TTLSystem{world: world}
}

func (t *TTLSystem) Update(dt float64) {
	for _, e := range t.world.Query(component.VelocityComponent.Kind(), component.TransformComponent.Kind()) {
		vel, _ := ecs.Get(t.world, e, component.VelocityComponent)
		tr, _ := ecs.Get(t.world, e, component.TransformComponent)
		tr.Pos = tr.Pos.Add(vel.V.Mult(dt))
		_ = ecs.Add(t.world, e, component.TransformComponent, tr)
	}

	for _, e := range t.world.Query(component.TTLComponent.Kind()) {
		ttl, _ := ecs.Get(t.world, e, component.TTLComponent)
		if ttl.DestroyCondition != component.DestroyConditionTimeout {
			continue
		}
		ttl.Waited += dt
		if ttl.Waited >= ttl.Lifetime {
			t.world.DestroyEntity(e)
			continue
		}
		_ = ecs.Add(t.world, e, component.TTLComponent, ttl)
	}
}
