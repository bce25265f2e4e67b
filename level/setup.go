package level

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/SynedraAcus/brutality/ecs"
	"github.com/SynedraAcus/brutality/ecs/entity"
	"github.com/SynedraAcus/brutality/ecs/system"
)

// maxScatterRetries bounds the rejection sampling for decoration heaps.
// A heap that cannot find a spot this many tries keeps the last
// candidate instead of looping forever on an over-constrained layout.
const maxScatterRetries = 100

func (m *Manager) setup(def Def) error {
	for _, p := range def.Entities {
		if _, err := m.factory.Create(p.Template, p.Pos.Vector(), entity.Config(p.Config)); err != nil {
			return errors.Wrapf(err, "place %s", p.Template)
		}
	}
	items := make([]system.SpawnItem, 0, len(def.Spawns))
	for _, s := range def.Spawns {
		items = append(items, system.SpawnItem{
			Template: s.Template,
			Pos:      s.Pos.Vector(),
			Region:   s.Region.BB(),
			Config:   entity.Config(s.Config),
			Delay:    s.Delay,
			When:     s.When,
		})
	}
	if err := m.spawner.AddSpawnsIterable(items); err != nil {
		return err
	}
	for _, sc := range def.Scatter {
		if err := m.scatter(sc); err != nil {
			return err
		}
	}
	if def.BgSound != "" {
		m.dispatcher.Publish(ecs.Event{Type: EventSetBgSound, Value: def.BgSound})
	}
	return nil
}

// scatter places randomized decoration heaps: anchors spaced along the
// x axis, each with a handful of filler entities jittered around it.
func (m *Manager) scatter(sc ScatterDef) error {
	if sc.Count <= 0 {
		return nil
	}
	if len(sc.Fillers) == 0 && sc.Anchor == "" {
		return errors.New("scatter block with neither anchor nor fillers")
	}
	anchors := m.scatterAnchors(sc)
	for _, x := range anchors {
		if sc.Anchor != "" {
			if _, err := m.factory.Create(sc.Anchor, cp.Vector{X: x, Y: sc.AnchorY}, nil); err != nil {
				return errors.Wrapf(err, "scatter anchor %s", sc.Anchor)
			}
		}
		n := sc.FillerMin
		if sc.FillerMax > sc.FillerMin {
			n += m.rng.Intn(sc.FillerMax - sc.FillerMin + 1)
		}
		for i := 0; i < n; i++ {
			filler := sc.Fillers[m.rng.Intn(len(sc.Fillers))]
			pos := cp.Vector{
				X: x + m.jitter(sc.JitterX),
				Y: sc.BaseY + m.jitter(sc.JitterY),
			}
			if _, err := m.factory.Create(filler, pos, nil); err != nil {
				return errors.Wrapf(err, "scatter filler %s", filler)
			}
		}
	}
	return nil
}

// scatterAnchors samples anchor x positions keeping every pair at least
// MinDist apart. Sampling is rejection-based with a bounded retry
// count; an exhausted budget accepts the last candidate rather than
// spinning on a layout that cannot satisfy the constraint.
func (m *Manager) scatterAnchors(sc ScatterDef) []float64 {
	placed := make([]float64, 0, sc.Count)
	for len(placed) < sc.Count {
		x := float64(m.rng.Intn(int(sc.MaxX) + 1))
		for try := 0; try < maxScatterRetries && tooClose(x, placed, sc.MinDist); try++ {
			x = float64(m.rng.Intn(int(sc.MaxX) + 1))
		}
		if tooClose(x, placed, sc.MinDist) {
			m.log.WithFields(logrus.Fields{
				"anchor":   len(placed),
				"min_dist": sc.MinDist,
				"max_x":    sc.MaxX,
			}).Warn("anchor placed closer than min_dist, layout too tight")
		}
		placed = append(placed, x)
	}
	return placed
}

// jitter samples uniformly from [-magnitude, magnitude].
func (m *Manager) jitter(magnitude float64) float64 {
	if magnitude <= 0 {
		return 0
	}
	n := int(magnitude)
	return float64(m.rng.Intn(2*n+1) - n)
}

func tooClose(x float64, placed []float64, minDist float64) bool {
	for _, p := range placed {
		if math.Abs(x-p) < minDist {
			return true
		}
	}
	return false
}
