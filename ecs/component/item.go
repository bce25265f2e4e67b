package component

// Item is the "item behaviour" capability: something that can be picked
// up, held and used. Owner is the entity currently holding the item
// (zero if it lies on the ground). FutureOwner names an entity the item
// is reserved for before the pick-up animation finishes; retention
// treats it the same as ownership so a mid-pickup item is not swept away
// by a level change.
type Item struct {
	Owner       uint64
	FutureOwner string

	// Handheld items fit into a hand slot; scenery items don't.
	Handheld bool
}

var ItemComponent = NewComponent[Item]()

// Appendage marks an entity as a body part of another (the player's
// hands). The explicit owner relation replaces id-substring matching,
// so a punk named "cop_1_handler" can never pass for a hand.
type Appendage struct {
	Owner uint64
	Side  string
}

var AppendageComponent = NewComponent[Appendage]()
