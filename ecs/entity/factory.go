package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/SynedraAcus/brutality/ecs"
	"github.com/SynedraAcus/brutality/ecs/component"
	"github.com/SynedraAcus/brutality/prefabs"
)

// Config is the keyword configuration accepted by Create: per-instance
// overrides forwarded by level data and spawn descriptors (text, size,
// next_level, lifetime, vy, monologue, ...).
type Config map[string]any

// Factory creates entities from named prefab templates. It owns the
// per-template counters that give entities their stable string ids
// ("barrel_1", "barrel_2"). The player template is the one exception:
// its id is pinned in the template data, and creating it also creates
// the hand appendage entities under owner-derived names.
type Factory struct {
	world      *ecs.World
	dispatcher *ecs.Dispatcher
	templates  map[string]prefabs.TemplateSpec
	counts     map[string]int
	log        *logrus.Entry
}

func NewFactory(world *ecs.World, dispatcher *ecs.Dispatcher) (*Factory, error) {
	if world == nil {
		return nil, errors.New("entity: factory needs a world")
	}
	if dispatcher == nil {
		return nil, errors.New("entity: factory needs a dispatcher")
	}
	templates, err := prefabs.LoadTemplates()
	if err != nil {
		return nil, err
	}
	return &Factory{
		world:      world,
		dispatcher: dispatcher,
		templates:  templates,
		counts:     make(map[string]int),
		log:        logrus.WithField("module", "factory"),
	}, nil
}

// ReloadTemplates re-reads template data files. Used by the dev watcher;
// already created entities are unaffected.
func (f *Factory) ReloadTemplates() error {
	templates, err := prefabs.LoadTemplates()
	if err != nil {
		return err
	}
	f.templates = templates
	return nil
}

// HasTemplate reports whether a template name is known.
func (f *Factory) HasTemplate(name string) bool {
	_, ok := f.templates[name]
	return ok
}

// Create instantiates a template at pos. cfg may be nil for plain
// scenery. Unknown templates are a content error and fail loudly.
func (f *Factory) Create(template string, pos cp.Vector, cfg Config) (ecs.Entity, error) {
	spec, ok := f.templates[template]
	if !ok {
		return 0, errors.Errorf("entity: unknown template %q", template)
	}

	name, player := f.nextName(spec)
	e, err := f.build(spec, name, pos, cfg)
	if err != nil {
		return 0, err
	}

	if player != nil {
		if err := f.createHands(e, name, player, pos); err != nil {
			f.world.DestroyEntity(e)
			return 0, err
		}
	}

	f.dispatcher.Publish(ecs.Event{Type: "ecs_create", Value: name})
	f.log.WithFields(logrus.Fields{"template": template, "entity": name}).Debug("created")
	return e, nil
}

// build instantiates spec under an explicit name and applies cfg.
func (f *Factory) build(spec prefabs.TemplateSpec, name string, pos cp.Vector, cfg Config) (ecs.Entity, error) {
	e, err := f.world.CreateEntity(name)
	if err != nil {
		return 0, errors.Wrapf(err, "entity: create %q", spec.Name)
	}

	ctx := &buildContext{template: spec.Name, pos: pos}
	for _, key := range componentBuildOrder {
		raw, present := spec.Components[key]
		if !present {
			continue
		}
		build, ok := componentRegistry[key]
		if !ok {
			f.world.DestroyEntity(e)
			return 0, errors.Errorf("entity: template %q uses unknown component %q", spec.Name, key)
		}
		if err := build(f.world, e, raw, ctx); err != nil {
			f.world.DestroyEntity(e)
			return 0, errors.Wrapf(err, "entity: build %q component %q", spec.Name, key)
		}
	}

	if err := f.applyConfig(e, ctx, cfg); err != nil {
		f.world.DestroyEntity(e)
		return 0, err
	}
	return e, nil
}

func (f *Factory) nextName(spec prefabs.TemplateSpec) (string, *prefabs.PlayerSpec) {
	if raw, ok := spec.Components["player"]; ok {
		ps, err := prefabs.DecodeComponentSpec[prefabs.PlayerSpec](raw)
		if err == nil && ps.ID != "" {
			return ps.ID, &ps
		}
	}
	f.counts[spec.Name]++
	return fmt.Sprintf("%s_%d", spec.Name, f.counts[spec.Name]), nil
}

func (f *Factory) createHands(owner ecs.Entity, ownerName string, ps *prefabs.PlayerSpec, pos cp.Vector) error {
	handSpec, ok := f.templates["cop_hand"]
	if !ok {
		return errors.New("entity: player template needs the cop_hand template")
	}
	var created []ecs.Entity
	fail := func(err error) error {
		for _, h := range created {
			f.world.DestroyEntity(h)
		}
		return err
	}
	for _, side := range ps.Hands {
		hand, err := f.build(handSpec, fmt.Sprintf("%s_hand_%s", ownerName, side), pos, nil)
		if err != nil {
			return fail(err)
		}
		created = append(created, hand)
		if err := ecs.Add(f.world, hand, component.AppendageComponent, component.Appendage{
			Owner: uint64(owner),
			Side:  side,
		}); err != nil {
			return fail(err)
		}
	}
	return nil
}
