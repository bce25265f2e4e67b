package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"

	"github.com/SynedraAcus/brutality/ecs"
	"github.com/SynedraAcus/brutality/ecs/component"
)

// applyConfig layers per-instance keyword config over the template's
// components. Keys mirror the ones level data and spawn descriptors use.
func (f *Factory) applyConfig(e ecs.Entity, ctx *buildContext, cfg Config) error {
	if len(cfg) == 0 {
		return nil
	}
	for key, raw := range cfg {
		var err error
		switch key {
		case "text":
			err = f.configText(e, raw, "")
		case "text_color":
			err = f.configText(e, nil, asString(raw))
		case "size":
			err = f.configSize(e, ctx, raw)
		case "next_level":
			err = f.configNextLevel(e, asString(raw))
		case "destroy_condition", "lifetime":
			err = f.configTTL(e, key, raw)
		case "vy":
			err = ecs.Add(f.world, e, component.VelocityComponent, component.Velocity{
				V: cp.Vector{Y: asFloat(raw)},
			})
		case "monologue":
			err = f.configMonologue(e, raw)
		default:
			err = errors.Errorf("entity: template %q got unknown config key %q", ctx.template, key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *Factory) configText(e ecs.Entity, value any, color string) error {
	text, _ := ecs.Get(f.world, e, component.TextComponent)
	if value != nil {
		text.Value = asString(value)
	}
	if color != "" {
		text.Color = color
	}
	return ecs.Add(f.world, e, component.TextComponent, text)
}

func (f *Factory) configSize(e ecs.Entity, ctx *buildContext, raw any) error {
	size, err := asVector(raw)
	if err != nil {
		return errors.Wrapf(err, "entity: template %q size config", ctx.template)
	}
	tr, _ := ecs.Get(f.world, e, component.TransformComponent)
	tr.Pos = ctx.pos
	tr.Size = size
	if err := ecs.Add(f.world, e, component.TransformComponent, tr); err != nil {
		return err
	}
	// A resized switch trigger covers the new footprint.
	if sw, ok := ecs.Get(f.world, e, component.LevelSwitchComponent); ok {
		sw.Region = switchRegion(f.world, e, ctx)
		return ecs.Add(f.world, e, component.LevelSwitchComponent, sw)
	}
	return nil
}

func (f *Factory) configNextLevel(e ecs.Entity, next string) error {
	sw, ok := ecs.Get(f.world, e, component.LevelSwitchComponent)
	if !ok {
		return errors.New("entity: next_level config on a template without level_switch")
	}
	sw.NextLevel = next
	return ecs.Add(f.world, e, component.LevelSwitchComponent, sw)
}

func (f *Factory) configTTL(e ecs.Entity, key string, raw any) error {
	ttl, _ := ecs.Get(f.world, e, component.TTLComponent)
	switch key {
	case "destroy_condition":
		ttl.DestroyCondition = asString(raw)
	case "lifetime":
		ttl.Lifetime = asFloat(raw)
	}
	return ecs.Add(f.world, e, component.TTLComponent, ttl)
}

func (f *Factory) configMonologue(e ecs.Entity, raw any) error {
	lines := asStrings(raw)
	mono, ok := ecs.Get(f.world, e, component.MonologueComponent)
	if !ok {
		mono = component.Monologue{TriggerDist: 30, Interval: 2.5}
	}
	mono.Lines = lines
	return ecs.Add(f.world, e, component.MonologueComponent, mono)
}

func asString(raw any) string {
	s, _ := raw.(string)
	return s
}

func asFloat(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func asStrings(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, asString(item))
		}
		return out
	case string:
		return []string{v}
	}
	return nil
}

func asVector(raw any) (cp.Vector, error) {
	switch v := raw.(type) {
	case map[string]any:
		return cp.Vector{X: asFloat(v["w"]), Y: asFloat(v["h"])}, nil
	case []any:
		if len(v) == 2 {
			return cp.Vector{X: asFloat(v[0]), Y: asFloat(v[1])}, nil
		}
	case cp.Vector:
		return v, nil
	}
	return cp.Vector{}, errors.Errorf("not a size: %v", raw)
}
