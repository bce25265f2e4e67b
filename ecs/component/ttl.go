package component

// DestroyConditionTimeout destroys the entity once Lifetime seconds have
// passed. It is currently the only destroy condition the content uses.
const DestroyConditionTimeout = "timeout"

// TTL gives a spawned entity a bounded life. Waited is advanced by the
// TTL system each tick.
type TTL struct {
	DestroyCondition string
	Lifetime         float64
	Waited           float64
}

var TTLComponent = NewComponent[TTL]()

// Text is displayable text on messages and signposts.
type Text struct {
	Value string
	Color string
}

var TextComponent = NewComponent[Text]()

// Faction is the allegiance of a character ("cops", "punks",
// "scientists"). Plot chatter and AI targeting key off it.
type Faction struct {
	Name string
}

var FactionComponent = NewComponent[Faction]()
