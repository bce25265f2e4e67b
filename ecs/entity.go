package ecs

import "strconv"

// Entity is an opaque handle to a live game object: generation in the
// high 32 bits, slot index in the low 32. A stale handle (one whose slot
// was recycled) compares unequal to the current occupant.
type Entity uint64

func makeEntity(idx uint32, gen uint32) Entity {
	return Entity(uint64(gen)<<32 | uint64(idx))
}

func (e Entity) index() uint32 {
	return uint32(e)
}

func (e Entity) generation() uint32 {
	return uint32(uint64(e) >> 32)
}

func (e Entity) Valid() bool {
	return e > 0
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// entityStore tracks slot generations and free slots. Slot 0 is reserved
// so the zero Entity is never valid.
type entityStore struct {
	gen  []uint32
	free []uint32
}

func (s *entityStore) create() Entity {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		idx = uint32(len(s.gen))
	}
	return makeEntity(idx, s.gen[idx-1])
}

func (s *entityStore) destroy(e Entity) bool {
	idx := e.index()
	if idx == 0 || int(idx) > len(s.gen) {
		return false
	}
	if s.gen[idx-1] != e.generation() {
		return false
	}
	s.gen[idx-1]++
	s.free = append(s.free, idx)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	idx := e.index()
	if idx == 0 || int(idx) > len(s.gen) {
		return false
	}
	return s.gen[idx-1] == e.generation()
}
