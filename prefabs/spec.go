package prefabs

import (
	"gopkg.in/yaml.v3"

	"github.com/pkg/errors"
)

// TemplateSpec is one entity template: a name plus the components it
// carries. Component payloads stay raw until the factory's registry
// decodes them with the matching spec type.
type TemplateSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

// TemplateFile groups related templates in one data file
// (characters.yaml, scenery_ghetto.yaml, ...).
type TemplateFile struct {
	Templates []TemplateSpec `yaml:"templates"`
}

// LoadSpec loads and decodes a single prefab data file into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, errors.Wrapf(err, "prefabs: load %s", filename)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, errors.Wrapf(err, "prefabs: unmarshal %s", filename)
	}

	return spec, nil
}

// LoadTemplates loads every embedded template file and returns the
// templates keyed by name. Duplicate names across files are an authoring
// error.
func LoadTemplates() (map[string]TemplateSpec, error) {
	files, err := List()
	if err != nil {
		return nil, errors.Wrap(err, "prefabs: list template files")
	}
	out := make(map[string]TemplateSpec)
	for _, f := range files {
		tf, err := LoadSpec[TemplateFile](f)
		if err != nil {
			return nil, err
		}
		for _, t := range tf.Templates {
			if t.Name == "" {
				return nil, errors.Errorf("prefabs: unnamed template in %s", f)
			}
			if _, dup := out[t.Name]; dup {
				return nil, errors.Errorf("prefabs: duplicate template %q in %s", t.Name, f)
			}
			out[t.Name] = t
		}
	}
	return out, nil
}

// DecodeComponentSpec re-marshals a raw component payload into its
// typed spec. A nil payload decodes to the zero spec, which is how
// presence-only components ("item: {}") are authored.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// Component spec payloads, decoded by the factory registry.

type SizeSpec struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type ItemSpec struct {
	// Handheld items fit into a hand slot; scenery items (barrels) don't.
	Handheld bool `yaml:"handheld"`
}

type FactionSpec struct {
	Name string `yaml:"name"`
}

type TextSpec struct {
	Value string `yaml:"value"`
	Color string `yaml:"color"`
}

type TTLSpec struct {
	DestroyCondition string  `yaml:"destroy_condition"`
	Lifetime         float64 `yaml:"lifetime"`
}

type MonologueSpec struct {
	Lines       []string `yaml:"lines"`
	TriggerDist float64  `yaml:"trigger_dist"`
	Interval    float64  `yaml:"interval"`
}

type LevelSwitchSpec struct {
	NextLevel string `yaml:"next_level"`
}

type PlayerSpec struct {
	// ID pins the player's entity name instead of a counter-derived one.
	ID    string   `yaml:"id"`
	Hands []string `yaml:"hands"`
}
