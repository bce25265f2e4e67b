package component

import "github.com/jakecoffman/cp"

// Name is the stable string id of an entity ("cop_1", "barrel_2", ...).
// Names are assigned by the entity factory and unique within a world.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

// Transform places an entity on the 500x60 character map. Size is the
// footprint of the entity's sprite in characters.
type Transform struct {
	Pos  cp.Vector
	Size cp.Vector
}

var TransformComponent = NewComponent[Transform]()

// Velocity in characters per second. Used by floating tutorial messages
// and thrown items; most scenery never carries one.
type Velocity struct {
	V cp.Vector
}

var VelocityComponent = NewComponent[Velocity]()

// PlayerTag marks the player-controlled entity.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Disabled marks an entity as non-interactive. The level manager sets it
// on the player for the gap between teardown and setup.
type Disabled struct{}

var DisabledComponent = NewComponent[Disabled]()

// CurrentLevel is bookkeeping kept on the player: the id of the level
// the player currently stands in.
type CurrentLevel struct {
	ID string
}

var CurrentLevelComponent = NewComponent[CurrentLevel]()
