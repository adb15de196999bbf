// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package server

import (
	"errors"

	"github.com/gviegas/visual/internal/bitvec"
)

func newErr(reason string) error { return errors.New("server: " + reason) }

// slot maps a RID's slot index to a handleMap.data
// element.
type slot struct {
	data int
	gen  uint32
}

// handleEntry is what a handleMap stores.
type handleEntry[D any] struct {
	data D
	slot int
}

// handleMap stores data of type D identified by RIDs
// of a single kind.
// Data is kept densely packed; removal swaps the last
// element into the vacated position.
type handleMap[D any] struct {
	kind  kind
	slots []slot
	used  bitvec.V[uint32]
	data  []handleEntry[D]
}

// reserve ensures that at least n slots exist.
func (m *handleMap[D]) reserve(n int) {
	if n <= m.used.Len() {
		return
	}
	cnt := (n - m.used.Len() + 31) / 32
	m.used.Grow(cnt)
	m.slots = append(m.slots, make([]slot, cnt*32)...)
}

// insert inserts data into m.
// It returns a RID that identifies data in m.
func (m *handleMap[D]) insert(data D) RID {
	if m.used.Rem() == 0 {
		m.reserve(max(32, m.used.Len()*2))
	}
	idx, ok := m.used.Search()
	if !ok {
		// Should never happen.
		panic("unexpected failure from bitvec.V.Search")
	}
	m.used.Set(idx)
	s := &m.slots[idx]
	s.gen = (s.gen + 1) & genMask
	if s.gen == 0 {
		s.gen = 1
	}
	s.data = len(m.data)
	m.data = append(m.data, handleEntry[D]{data, idx})
	return makeRID(m.kind, s.gen, idx)
}

// lookup returns the slot index of rid, or false if
// rid does not identify live data in m.
func (m *handleMap[D]) lookup(rid RID) (int, bool) {
	if rid.kind() != m.kind {
		return 0, false
	}
	idx := rid.slot()
	if !m.used.IsSet(idx) || m.slots[idx].gen != rid.gen() {
		return 0, false
	}
	return idx, true
}

// get returns a pointer to the data identified by rid,
// or nil if rid is not live.
func (m *handleMap[D]) get(rid RID) *D {
	idx, ok := m.lookup(rid)
	if !ok {
		return nil
	}
	return &m.data[m.slots[idx].data].data
}

// remove removes the data identified by rid.
// It returns false if rid is not live.
func (m *handleMap[D]) remove(rid RID) bool {
	idx, ok := m.lookup(rid)
	if !ok {
		return false
	}
	d := m.slots[idx].data
	last := len(m.data) - 1
	if d < last {
		swap := m.data[last].slot
		m.slots[swap].data = d
		m.data[d] = m.data[last]
	}
	m.slots[idx].data = -1
	m.used.Unset(idx)
	m.data[last] = handleEntry[D]{}
	m.data = m.data[:last]
	return true
}

// len returns the number of live entries.
func (m *handleMap[_]) len() int { return len(m.data) }
