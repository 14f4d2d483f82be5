package smallmap

// table is the heap representation a Map promotes into.
//
// Hashing and key equality are delegated to the built-in map, which
// indexes a dense slot slice kept in insertion order. Slot positions
// serve as cursors: erasing leaves a tombstone in place, so cursors to
// other entries stay valid. Tombstones are only compacted by insert,
// once they outnumber the live entries, which moves live slots the same
// way a rehash would.
type table[K comparable, V any] struct {
	index map[K]int
	slots []tableSlot[K, V]
	dead  int
}

// tableSlot is a table cell; a tombstone has used == false and a zero
// entry so that it retains nothing.
type tableSlot[K comparable, V any] struct {
	Entry[K, V]
	used bool
}

func newTable[K comparable, V any](tableLen int) *table[K, V] {
	return &table[K, V]{
		index: make(map[K]int, tableLen),
		slots: make([]tableSlot[K, V], 0, tableLen),
	}
}

func (t *table[K, V]) len() int {
	return len(t.index)
}

// end is the position one past the last slot.
func (t *table[K, V]) end() int {
	return len(t.slots)
}

func (t *table[K, V]) find(key K) (int, bool) {
	i, ok := t.index[key]
	return i, ok
}

// live reports whether position i holds an entry.
func (t *table[K, V]) live(i int) bool {
	return i >= 0 && i < len(t.slots) && t.slots[i].used
}

// insert adds key unless it is present and returns the position holding
// it. moved reports that tombstones were compacted first, which shifts
// the positions of live slots.
func (t *table[K, V]) insert(key K, value V) (pos int, inserted, moved bool) {
	if i, ok := t.index[key]; ok {
		return i, false, false
	}
	if t.dead > len(t.index) {
		t.compact()
		moved = true
	}
	pos = len(t.slots)
	t.slots = append(t.slots, tableSlot[K, V]{
		Entry: Entry[K, V]{Key: key, Value: value},
		used:  true,
	})
	t.index[key] = pos
	return pos, true, moved
}

func (t *table[K, V]) erase(key K) bool {
	i, ok := t.index[key]
	if !ok {
		return false
	}
	t.eraseAt(i)
	return true
}

// eraseAt turns the live slot at i into a tombstone.
func (t *table[K, V]) eraseAt(i int) {
	delete(t.index, t.slots[i].Key)
	t.slots[i] = tableSlot[K, V]{}
	t.dead++
}

// next returns the first live position after i, or end.
func (t *table[K, V]) next(i int) int {
	for i++; i < len(t.slots) && !t.slots[i].used; i++ {
	}
	return i
}

// prev returns the last live position before i, or -1.
func (t *table[K, V]) prev(i int) int {
	for i--; i >= 0 && !t.slots[i].used; i-- {
	}
	return i
}

// compact drops tombstones, keeping live slots in insertion order.
func (t *table[K, V]) compact() {
	j := 0
	for i := range t.slots {
		if !t.slots[i].used {
			continue
		}
		if i != j {
			t.slots[j] = t.slots[i]
			t.index[t.slots[j].Key] = j
		}
		j++
	}
	clear(t.slots[j:])
	t.slots = t.slots[:j]
	t.dead = 0
}

// clone returns a compacted deep copy of the entries.
func (t *table[K, V]) clone() *table[K, V] {
	c := newTable[K, V](max(len(t.index), minTableLen))
	for i := range t.slots {
		if s := &t.slots[i]; s.used {
			c.index[s.Key] = len(c.slots)
			c.slots = append(c.slots, *s)
		}
	}
	return c
}
