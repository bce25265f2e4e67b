package component

import "github.com/jakecoffman/cp"

// Monologue makes an NPC deliver lines one by one while the player is
// within TriggerDist. Delivery pauses when the player walks away and
// resumes on the same line when they return.
type Monologue struct {
	Lines       []string
	TriggerDist float64
	Interval    float64

	Next   int
	Waited float64
}

var MonologueComponent = NewComponent[Monologue]()

// LevelSwitch is a walk-in trigger region that requests a transition to
// NextLevel. The level manager disables all switches for the duration of
// a transition so a freshly placed switch cannot fire mid-change.
type LevelSwitch struct {
	Region    cp.BB
	NextLevel string
	Enabled   bool
}

var LevelSwitchComponent = NewComponent[LevelSwitch]()
