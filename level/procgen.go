package level

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"

	"github.com/SynedraAcus/brutality/ecs/entity"
)

// Corridor geometry. Levels are always levelWidth wide; generators fill
// content up to the fill limit and hand the rest to the exit switch.
const (
	levelWidth      = 500
	ghettoFillLimit = 450
	deptFillLimit   = 400
	genStartX       = 20
	genStartY       = 20
)

// maxPunkPlacementRetries bounds the rejection sampling that spaces
// battle enemies apart.
const maxPunkPlacementRetries = 100

var genStyles = map[string]bool{"ghetto": true, "dept": true}
var genKinds = map[string]bool{"corridor": true}

// generate builds a procedural level of the given style and kind and
// returns the player start position. The corridor is a strip of
// prefab-like "rooms" followed by an exit switch covering the far end.
func (m *Manager) generate(style, kind string) (cp.Vector, error) {
	if !genStyles[style] {
		return cp.Vector{}, errors.Errorf("invalid level style %q", style)
	}
	if !genKinds[kind] {
		return cp.Vector{}, errors.Errorf("invalid level kind %q", kind)
	}

	if err := m.generateBackdrop(style); err != nil {
		return cp.Vector{}, err
	}

	var runningLen float64
	var err error
	switch style {
	case "ghetto":
		// Leave the first stretch empty so the player is not dropped
		// into the middle of a battle.
		runningLen = 50
		for runningLen < ghettoFillLimit && err == nil {
			var w float64
			w, err = m.ghettoRoom(runningLen)
			runningLen += w
		}
	case "dept":
		for runningLen < deptFillLimit && err == nil {
			var w float64
			w, err = m.deptRoom(runningLen)
			runningLen += w
		}
	}
	if err != nil {
		return cp.Vector{}, err
	}

	next := "ghetto_test"
	if m.plot != nil {
		next = m.plot.NextLevel()
	}
	_, err = m.factory.Create("level_switch", cp.Vector{X: runningLen + 1, Y: 20}, entity.Config{
		"size":       map[string]any{"w": levelWidth - runningLen - 1, "h": 30.0},
		"next_level": next,
	})
	if err != nil {
		return cp.Vector{}, err
	}
	return cp.Vector{X: genStartX, Y: genStartY}, nil
}

func (m *Manager) generateBackdrop(style string) error {
	type placement struct {
		template string
		pos      cp.Vector
		w, h     float64
	}
	var base []placement
	switch style {
	case "ghetto":
		base = []placement{
			{"ghetto_bg", cp.Vector{X: 0, Y: 0}, levelWidth, 20},
			{"floor", cp.Vector{X: 0, Y: 20}, levelWidth, 30},
			{"invis", cp.Vector{X: 0, Y: 51}, levelWidth, 9},
		}
	case "dept":
		base = []placement{
			{"dept_bg", cp.Vector{X: 0, Y: 0}, levelWidth, 20},
			{"floor", cp.Vector{X: 0, Y: 20}, levelWidth, 30},
			{"invis", cp.Vector{X: 0, Y: 50}, levelWidth, 9},
		}
	}
	for _, p := range base {
		cfg := entity.Config{"size": map[string]any{"w": p.w, "h": p.h}}
		if _, err := m.factory.Create(p.template, p.pos, cfg); err != nil {
			return err
		}
	}
	if style == "ghetto" {
		// Garbage heaps along the street. Same layout rule the
		// authored ghetto levels use.
		return m.scatter(ScatterDef{
			Count:     6,
			MinDist:   30,
			MaxX:      240,
			Anchor:    "garbage_bag",
			AnchorY:   18,
			Fillers:   garbageFillers,
			FillerMin: 3,
			FillerMax: 6,
			JitterX:   5,
			JitterY:   2,
			BaseY:     22,
		})
	}
	return nil
}

var garbageFillers = []string{"can", "can2", "cigarettes", "garbage_bag", "bucket", "pizza_box"}
var punkTemplates = []string{"bottle_punk", "nunchaku_punk"}
var barricadeTemplates = []string{"barricade_1", "barricade_2", "barricade_3"}

// ghettoRoom fills one stretch of street with a single element: a
// wreck, nothing, a punk battle, or a barricaded weapon stash. Returns
// the width consumed.
func (m *Manager) ghettoRoom(leftEdge float64) (float64, error) {
	if 400-leftEdge < 55 {
		return ghettoFillLimit - leftEdge, nil
	}
	roomWidth := float64(60 + m.rng.Intn(int(math.Min(100, ghettoFillLimit-leftEdge))-59))

	switch element := m.rng.Float64(); {
	case element < 0.1:
		pos := cp.Vector{X: leftEdge + (roomWidth-44)/2, Y: 12}
		if _, err := m.factory.Create("broken_car", pos, nil); err != nil {
			return 0, err
		}
	case element < 0.25:
		// Empty piece of land.
	case element < 0.75:
		if err := m.ghettoBattle(leftEdge, roomWidth); err != nil {
			return 0, err
		}
	default:
		if err := m.ghettoStash(leftEdge, roomWidth); err != nil {
			return 0, err
		}
	}
	return roomWidth, nil
}

// ghettoBattle drops a spaced group of punks, possibly around a barrel
// with garbage sprinkled about.
func (m *Manager) ghettoBattle(leftEdge, roomWidth float64) error {
	punkCount := 2 + m.rng.Intn(3)
	positions := []cp.Vector{m.punkPos(leftEdge, roomWidth)}
	for i := 0; i < punkCount; i++ {
		pos := m.punkPos(leftEdge, roomWidth)
		for try := 0; try < maxPunkPlacementRetries && nearestDist(pos, positions) < 10; try++ {
			pos = m.punkPos(leftEdge, roomWidth)
		}
		positions = append(positions, pos)
	}
	for _, pos := range positions {
		t := punkTemplates[m.rng.Intn(len(punkTemplates))]
		if _, err := m.factory.Create(t, pos, nil); err != nil {
			return err
		}
	}
	if m.rng.Float64() < 0.6 {
		barrelPos := cp.Vector{X: leftEdge + roomWidth/2, Y: 25}
		if _, err := m.factory.Create("barrel", barrelPos, nil); err != nil {
			return err
		}
		for i, n := 0, 3+m.rng.Intn(3); i < n; i++ {
			filler := garbageFillers[m.rng.Intn(len(garbageFillers))]
			pos := cp.Vector{
				X: barrelPos.X + float64(m.rng.Intn(11)-5),
				Y: barrelPos.Y + 9 + float64(m.rng.Intn(5)-2),
			}
			if _, err := m.factory.Create(filler, pos, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Manager) punkPos(leftEdge, roomWidth float64) cp.Vector {
	return cp.Vector{
		X: leftEdge + 5 + float64(m.rng.Intn(int(roomWidth)-9)),
		Y: 10 + float64(m.rng.Intn(16)),
	}
}

func nearestDist(p cp.Vector, others []cp.Vector) float64 {
	best := math.Inf(1)
	for _, o := range others {
		if d := p.Distance(o); d < best {
			best = d
		}
	}
	return best
}

// ghettoStash places two different barricades with a few weighted
// weapon drops between them, usually guarded.
func (m *Manager) ghettoStash(leftEdge, roomWidth float64) error {
	stashY := float64([2]int{16, 37}[m.rng.Intn(2)])
	first := barricadeTemplates[m.rng.Intn(len(barricadeTemplates))]
	second := first
	for second == first {
		second = barricadeTemplates[m.rng.Intn(len(barricadeTemplates))]
	}
	firstPos := cp.Vector{
		X: leftEdge + roomWidth/2 - float64(20+m.rng.Intn(11)),
		Y: stashY + float64(m.rng.Intn(7)-3),
	}
	secondPos := cp.Vector{
		X: firstPos.X + float64(30+m.rng.Intn(16)),
		Y: firstPos.Y + float64(m.rng.Intn(7)-3),
	}
	if _, err := m.factory.Create(first, firstPos, nil); err != nil {
		return err
	}
	if _, err := m.factory.Create(second, secondPos, nil); err != nil {
		return err
	}

	items := []string{"bandage", "nunchaku", "bottle_launcher", "pistol"}
	itemProbs := []float64{0.4, 0.25, 0.25, 0.1}
	for i, n := 0, 1+m.rng.Intn(3); i < n; i++ {
		roll := m.rng.Float64()
		for j, prob := range itemProbs {
			roll -= prob
			if roll <= 0 {
				span := int(secondPos.X-5) - int(firstPos.X+20)
				if span < 1 {
					span = 1
				}
				pos := cp.Vector{
					X: firstPos.X + 20 + float64(m.rng.Intn(span)),
					Y: stashY + float64(5+m.rng.Intn(6)),
				}
				if _, err := m.factory.Create(items[j], pos, nil); err != nil {
					return err
				}
				break
			}
		}
	}
	if m.rng.Float64() < 0.7 {
		guard := punkTemplates[m.rng.Intn(len(punkTemplates))]
		pos := cp.Vector{
			X: leftEdge + roomWidth/2,
			Y: stashY + float64(m.rng.Intn(11)-5),
		}
		if _, err := m.factory.Create(guard, pos, nil); err != nil {
			return err
		}
	}
	return nil
}

// deptRoom fills one department room: a doorway wall on the right and
// one of three interiors (office, gym, lockers). Returns the width
// consumed.
func (m *Manager) deptRoom(leftEdge float64) (float64, error) {
	if 450-leftEdge < 55 {
		return 450 - leftEdge, nil
	}
	roomWidth := float64(55 + m.rng.Intn(int(math.Min(100, 450-leftEdge))-54))

	doorStyle := m.rng.Intn(3)
	walls := map[int][]cp.Vector{
		0: {{X: leftEdge + roomWidth - 25, Y: 11}, {X: leftEdge + roomWidth - 37, Y: 23}},
		1: {{X: leftEdge + roomWidth - 15, Y: 0}, {X: leftEdge + roomWidth - 34, Y: 20}},
		2: {{X: leftEdge + roomWidth - 15, Y: 0}, {X: leftEdge + roomWidth - 27, Y: 12}},
	}
	for _, pos := range walls[doorStyle] {
		if _, err := m.factory.Create("dept_wall_inner", pos, nil); err != nil {
			return 0, err
		}
	}

	var err error
	switch m.rng.Intn(3) {
	case 0:
		err = m.deptOffice(leftEdge, roomWidth)
	case 1:
		err = m.deptGym(leftEdge, roomWidth)
	case 2:
		err = m.deptLockers(leftEdge, roomWidth, doorStyle)
	}
	if err != nil {
		return 0, err
	}
	return roomWidth, nil
}

// deptOffice lays tables and chairs in a grid with random gaps; some
// desks get a chatting cop.
func (m *Manager) deptOffice(leftEdge, roomWidth float64) error {
	tables := int(roomWidth / 40)
	for col := 0; col < tables; col++ {
		for row := 0; row < 2; row++ {
			if m.rng.Float64() < 0.25 {
				continue
			}
			cx := leftEdge + float64(col*40) - float64(20*row)
			chairPos := cp.Vector{X: cx + 3, Y: 13 + float64(15*row)}
			tablePos := cp.Vector{X: cx + 6, Y: 10 + float64(15*row)}
			if _, err := m.factory.Create("dept_chair_1", chairPos, nil); err != nil {
				return err
			}
			if _, err := m.factory.Create("dept_table_1", tablePos, nil); err != nil {
				return err
			}
			if m.plot != nil && m.rng.Float64() < 0.3 {
				lines, err := m.plot.PeacefulPhrase("cops")
				if err != nil {
					return err
				}
				npcPos := cp.Vector{X: cx + 3, Y: 5 + float64(20*row)}
				cfg := entity.Config{"monologue": lines}
				if _, err := m.factory.Create("cop_npc", npcPos, cfg); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// deptGym scatters punchbags, weights and benches along the walls.
func (m *Manager) deptGym(leftEdge, roomWidth float64) error {
	usedSpace := 10.0
	for usedSpace < roomWidth-30 {
		switch element := m.rng.Float64(); {
		case element < 0.3:
			pos := cp.Vector{X: leftEdge + 7 + usedSpace, Y: 0}
			if _, err := m.factory.Create("punchbag", pos, nil); err != nil {
				return err
			}
			usedSpace += 20
		case element < 0.6:
			pos := cp.Vector{X: leftEdge + usedSpace + 5, Y: 14}
			if _, err := m.factory.Create("dept_weight", pos, nil); err != nil {
				return err
			}
			usedSpace += 30
		case element < 0.9:
			pos := cp.Vector{X: leftEdge + usedSpace, Y: 15}
			if _, err := m.factory.Create("dept_bench", pos, nil); err != nil {
				return err
			}
			usedSpace += 20
		default:
			usedSpace += 10
		}
		if m.rng.Float64() < 0.4 {
			pos := cp.Vector{X: leftEdge + usedSpace - 30, Y: 45}
			if _, err := m.factory.Create("dept_bench", pos, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// deptLockers lines the right wall with lockers, skipping the slots the
// doorway occupies.
func (m *Manager) deptLockers(leftEdge, roomWidth float64, doorStyle int) error {
	skip := map[int][8]bool{
		0: {true, true, true, false, false, false, false, false},
		1: {false, false, true, true, true, false, false, false},
		2: {false, false, false, false, false, true, true, true},
	}
	for i := 0; i < 8; i++ {
		if skip[doorStyle][i] {
			continue
		}
		pos := cp.Vector{
			X: leftEdge + roomWidth - 13 - float64(4*i),
			Y: 4 + float64(4*i),
		}
		if _, err := m.factory.Create("dept_locker", pos, nil); err != nil {
			return err
		}
	}
	return nil
}
