package ecs

import (
	"github.com/pkg/errors"

	"github.com/SynedraAcus/brutality/ecs/component"
)

// World owns all live entities and their components. It doubles as the
// process-wide entity tracker: everything that exists in the game is
// reachable through it, and destroyed entities stop being returned
// immediately. All access is single-threaded from the game loop.
type World struct {
	store  entityStore
	tables map[component.ComponentKind]*sparseSet
	names  map[string]Entity
	order  []Entity
	pos    map[Entity]int
}

func NewWorld() *World {
	return &World{
		tables: make(map[component.ComponentKind]*sparseSet),
		names:  make(map[string]Entity),
		pos:    make(map[Entity]int),
	}
}

// CreateEntity allocates a new entity. A non-empty name must be unique;
// it is indexed for Named lookups and attached as a Name component.
func (w *World) CreateEntity(name string) (Entity, error) {
	if name != "" {
		if _, taken := w.names[name]; taken {
			return 0, errors.Errorf("ecs: duplicate entity name %q", name)
		}
	}
	e := w.store.create()
	w.pos[e] = len(w.order)
	w.order = append(w.order, e)
	if name != "" {
		w.names[name] = e
		w.table(component.NameComponent.Kind()).set(e.index(), component.Name{Value: name})
	}
	return e, nil
}

// DestroyEntity removes an entity and all its components. Irreversible:
// the entity stops being returned by any query or filter.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.store.isAlive(e) {
		return false
	}
	if n, ok := w.GetComponent(e, component.NameComponent.Kind()); ok {
		delete(w.names, n.(component.Name).Value)
	}
	for _, t := range w.tables {
		t.remove(e.index())
	}
	i := w.pos[e]
	last := len(w.order) - 1
	w.order[i] = w.order[last]
	w.pos[w.order[i]] = i
	w.order = w.order[:last]
	delete(w.pos, e)
	w.store.destroy(e)
	return true
}

func (w *World) IsAlive(e Entity) bool {
	return w.store.isAlive(e)
}

// Named returns the live entity carrying the given name.
func (w *World) Named(name string) (Entity, bool) {
	e, ok := w.names[name]
	return e, ok
}

// NameOf returns the entity's name, or "" if it has none.
func (w *World) NameOf(e Entity) string {
	n, ok := w.GetComponent(e, component.NameComponent.Kind())
	if !ok {
		return ""
	}
	return n.(component.Name).Value
}

// Entities returns a snapshot of every live entity.
func (w *World) Entities() []Entity {
	out := make([]Entity, len(w.order))
	copy(out, w.order)
	return out
}

// FilterEntities returns a snapshot of live entities satisfying pred.
// The snapshot is taken before pred runs, so callers may destroy
// returned entities while iterating the result.
func (w *World) FilterEntities(pred func(Entity) bool) []Entity {
	snapshot := w.Entities()
	out := make([]Entity, 0, len(snapshot))
	for _, e := range snapshot {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// AddComponent attaches a component value to a live entity.
func (w *World) AddComponent(e Entity, k component.ComponentKind, v any) error {
	if !k.Valid() {
		return errors.New("ecs: invalid component kind")
	}
	if !w.store.isAlive(e) {
		return errors.Errorf("ecs: entity %s not alive", e)
	}
	w.table(k).set(e.index(), v)
	return nil
}

func (w *World) GetComponent(e Entity, k component.ComponentKind) (any, bool) {
	if !w.store.isAlive(e) {
		return nil, false
	}
	t, ok := w.tables[k]
	if !ok {
		return nil, false
	}
	return t.get(e.index())
}

func (w *World) HasComponent(e Entity, k component.ComponentKind) bool {
	_, ok := w.GetComponent(e, k)
	return ok
}

func (w *World) RemoveComponent(e Entity, k component.ComponentKind) bool {
	if !w.store.isAlive(e) {
		return false
	}
	t, ok := w.tables[k]
	if !ok {
		return false
	}
	return t.remove(e.index())
}

// Query returns every live entity carrying all the given kinds.
func (w *World) Query(kinds ...component.ComponentKind) []Entity {
	return w.FilterEntities(func(e Entity) bool {
		for _, k := range kinds {
			if !w.HasComponent(e, k) {
				return false
			}
		}
		return true
	})
}

// First returns an arbitrary entity carrying the kind, if any exists.
func (w *World) First(k component.ComponentKind) (Entity, bool) {
	for _, e := range w.order {
		if w.HasComponent(e, k) {
			return e, true
		}
	}
	return 0, false
}

func (w *World) table(k component.ComponentKind) *sparseSet {
	t, ok := w.tables[k]
	if !ok {
		t = &sparseSet{}
		w.tables[k] = t
	}
	return t
}
