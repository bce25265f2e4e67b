package level

import (
	"gopkg.in/yaml.v3"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"

	"github.com/SynedraAcus/brutality/levels"
)

// Def is the authored content of one level: where the player starts,
// what stands where, and which spawns wait for the player. Loaded from
// levels/*.yaml.
type Def struct {
	Name     string       `yaml:"name"`
	Start    Vec          `yaml:"start"`
	BgSound  string       `yaml:"bg_sound"`
	Entities []Placed     `yaml:"entities"`
	Spawns   []SpawnDef   `yaml:"spawns"`
	Scatter  []ScatterDef `yaml:"scatter"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

// Placed is one statically placed entity.
type Placed struct {
	Template string         `yaml:"template"`
	Pos      Vec            `yaml:"pos"`
	Config   map[string]any `yaml:"config"`
}

// SpawnDef is a scheduled spawn: created at Pos when the player enters
// Region (and When holds), after Delay seconds.
type SpawnDef struct {
	Template string         `yaml:"template"`
	Pos      Vec            `yaml:"pos"`
	Region   Region         `yaml:"region"`
	Config   map[string]any `yaml:"config"`
	Delay    float64        `yaml:"delay"`
	When     string         `yaml:"when"`
}

type Region struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (r Region) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}
}

// ScatterDef randomizes decoration heaps at setup time: Count anchors
// spaced at least MinDist apart along the x axis, each sprinkled with a
// random pick of filler templates around it.
type ScatterDef struct {
	Count     int      `yaml:"count"`
	MinDist   float64  `yaml:"min_dist"`
	MaxX      float64  `yaml:"max_x"`
	Anchor    string   `yaml:"anchor"`
	AnchorY   float64  `yaml:"anchor_y"`
	Fillers   []string `yaml:"fillers"`
	FillerMin int      `yaml:"filler_min"`
	FillerMax int      `yaml:"filler_max"`
	JitterX   float64  `yaml:"jitter_x"`
	JitterY   float64  `yaml:"jitter_y"`
	BaseY     float64  `yaml:"base_y"`
}

// LoadDef reads and validates one level data file.
func LoadDef(name string) (Def, error) {
	data, err := levels.Read(name)
	if err != nil {
		return Def{}, errors.Wrapf(err, "level: read %s", name)
	}
	var def Def
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Def{}, errors.Wrapf(err, "level: unmarshal %s", name)
	}
	if def.Name == "" {
		return Def{}, errors.Errorf("level: %s has no name", name)
	}
	return def, nil
}

// LoadDefs reads every embedded level data file, keyed by level id.
func LoadDefs() (map[string]Def, error) {
	names, err := levels.List()
	if err != nil {
		return nil, errors.Wrap(err, "level: list data files")
	}
	defs := make(map[string]Def, len(names))
	for _, n := range names {
		def, err := LoadDef(n)
		if err != nil {
			return nil, err
		}
		if _, dup := defs[def.Name]; dup {
			return nil, errors.Errorf("level: duplicate level id %q", def.Name)
		}
		defs[def.Name] = def
	}
	return defs, nil
}
