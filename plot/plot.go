// Package plot drives narrative state: what NPC bystanders chatter
// about, what enemies shout, and where the story sends the player next.
package plot

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Goal describes a player objective: who they fight, who helps, and
// which level types make up its stages.
type Goal struct {
	Name          string
	Description   string
	EnemyFactions []string
	AllyFactions  []string
	Location      string
	LevelTypes    []string
	Chatter       map[string]string
	NextOnWin     []string

	stage int
}

// Manager holds plot state and hands out faction-appropriate dialogue.
type Manager struct {
	generalPhrases map[string][][]string
	attackPhrases  map[string][]string
	goals          map[string]*Goal
	current        *Goal
	rng            *rand.Rand
}

// Option configures a Manager.
type Option func(*Manager)

// WithRand sets the random source used for phrase selection.
func WithRand(rng *rand.Rand) Option {
	return func(m *Manager) { m.rng = rng }
}

// WithGoals registers the goal graph and the initial goal.
func WithGoals(goals map[string]*Goal, initial string) Option {
	return func(m *Manager) {
		m.goals = goals
		m.current = goals[initial]
	}
}

// NewManager builds a plot manager with the stock dialogue tables.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		generalPhrases: map[string][][]string{
			"cops": {
				{"Captain's an ass,\nif you ask me."},
				{"Hey there", "How's it going?"},
				{"Anybody seen my badge?"},
				{"Hi"},
				{"Howdy"},
				{"The whole damn city\nis going to hell", "We need to clean up\nthe streets"},
			},
			"scientists": {
				{"Now back to the grants"},
				{"Where's the goddamn\nwelder?", "I have no time for\nplaying hide-n-seek", "Especially with my tools"},
				{"Calibrating..."},
				{"Careful around the spikes", "Wouldn't want you fried"},
				{"Hey, what's it \nwith the alpha spark\nand sodium lamps?", "Why are they even...", "Oh, nevermind,", "Just thinking aloud"},
			},
		},
		attackPhrases: map[string][]string{
			"punks": {
				"Oink oink, motherfucker!",
				"Here, piggy, piggy...",
				"This is OUR turf!",
				"Down with you!",
				"Asshole",
				"You shoulda\nstayed out of here",
				"Go die already",
			},
			"scientists": {
				"Stay out of my lab!",
				"Who has even\nlet you in?",
				"No way I let some asshole\nplay with my equipment",
				"Here's for you",
				"And stay down",
			},
			"cops": {
				"One less asshole",
				"Feeling lucky?",
				"Here's for you",
				"You're SO fucked",
			},
		},
		rng: rand.New(rand.NewSource(rand.Int63())),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PeacefulPhrase returns a multi-line monologue for an idle NPC of the
// given faction.
func (m *Manager) PeacefulPhrase(faction string) ([]string, error) {
	phrases, ok := m.generalPhrases[faction]
	if !ok {
		return nil, errors.Errorf("plot: no phrases for faction %q", faction)
	}
	return phrases[m.rng.Intn(len(phrases))], nil
}

// AttackPhrase returns a one-liner for an enemy of the given faction to
// shout mid-fight.
func (m *Manager) AttackPhrase(faction string) (string, error) {
	phrases, ok := m.attackPhrases[faction]
	if !ok {
		return "", errors.Errorf("plot: no attack phrases for faction %q", faction)
	}
	return phrases[m.rng.Intn(len(phrases))], nil
}

// NextStage advances the current goal; completing its last stage picks
// a random follow-up goal.
func (m *Manager) NextStage() error {
	if m.current == nil {
		return errors.New("plot: no current goal")
	}
	m.current.stage++
	if m.current.stage < len(m.current.LevelTypes) {
		return nil
	}
	if len(m.current.NextOnWin) == 0 {
		return errors.Errorf("plot: goal %q has no follow-up", m.current.Name)
	}
	next := m.current.NextOnWin[m.rng.Intn(len(m.current.NextOnWin))]
	goal, ok := m.goals[next]
	if !ok {
		return errors.Errorf("plot: unknown goal %q", next)
	}
	goal.stage = 0
	m.current = goal
	return nil
}

// CurrentGoal returns the active goal, if any.
func (m *Manager) CurrentGoal() (*Goal, bool) {
	return m.current, m.current != nil
}

// NextLevel returns the id of the level the plot sends the player to
// after the current one.
func (m *Manager) NextLevel() string {
	return "dept_corridor"
}
