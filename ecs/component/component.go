package component

import "sync/atomic"

// ComponentID is the process-wide numeric identity of a component kind.
type ComponentID uint32

// ComponentKind is the type-erased identity used by world storage and
// queries. Two handles share a kind only if they are the same handle.
type ComponentKind struct {
	id ComponentID
}

func (k ComponentKind) ID() ComponentID {
	return k.id
}

func (k ComponentKind) Valid() bool {
	return k.id != 0
}

// ComponentHandle ties a component kind to its Go type, so reads and
// writes through it stay type-safe without casts at call sites.
type ComponentHandle[T any] struct {
	kind ComponentKind
}

// NewComponent registers a fresh component kind. Handles are expected to
// be package-level vars declared next to their data type.
func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: ComponentKind{id: ComponentID(nextComponentID.Add(1))}}
}

func (h ComponentHandle[T]) Kind() ComponentKind {
	return h.kind
}

var nextComponentID atomic.Uint32
