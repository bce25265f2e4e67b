package ecs

// sparseSet stores one component kind for all entities that carry it,
// keyed by entity slot index. Dense arrays keep iteration deterministic
// (insertion order, with swap-removal on delete).
type sparseSet struct {
	denseIdx []uint32
	denseVal []any
	sparse   []int
}

func (s *sparseSet) has(idx uint32) bool {
	if idx == 0 || int(idx) > len(s.sparse) {
		return false
	}
	d := s.sparse[idx-1]
	return d >= 0 && d < len(s.denseIdx) && s.denseIdx[d] == idx
}

func (s *sparseSet) get(idx uint32) (any, bool) {
	if !s.has(idx) {
		return nil, false
	}
	return s.denseVal[s.sparse[idx-1]], true
}

func (s *sparseSet) set(idx uint32, v any) {
	if idx == 0 {
		return
	}
	for int(idx) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.has(idx) {
		s.denseVal[s.sparse[idx-1]] = v
		return
	}
	s.denseIdx = append(s.denseIdx, idx)
	s.denseVal = append(s.denseVal, v)
	s.sparse[idx-1] = len(s.denseIdx) - 1
}

func (s *sparseSet) remove(idx uint32) bool {
	if !s.has(idx) {
		return false
	}
	d := s.sparse[idx-1]
	last := len(s.denseIdx) - 1
	lastIdx := s.denseIdx[last]

	s.denseIdx[d] = lastIdx
	s.denseVal[d] = s.denseVal[last]
	s.sparse[lastIdx-1] = d

	s.denseIdx = s.denseIdx[:last]
	s.denseVal = s.denseVal[:last]
	s.sparse[idx-1] = -1
	return true
}

func (s *sparseSet) len() int {
	return len(s.denseIdx)
}
