package smallmap

import (
	"github.com/llxisdsh/smallmap/internal/opt"
)

// Iterator is a cursor over the entries of one Map. It holds either an
// inline slot index or a position in the promoted table, and every
// operation dispatches on which of the two it is.
//
// An Iterator does not own its Map. It is invalidated by promotion,
// Clear, CopyFrom, MoveFrom, any Erase while the map is inline, and the
// erasure of the entry it points to. While promoted, erasing other
// entries leaves it valid; inserting a new key may not.
//
// Using an invalidated iterator, or reading through End, is a
// programming error. Built with -tags=smallmap_checked every access
// verifies the iterator is current and panics otherwise, at the price
// of a version word in each Map and Iterator and a compare per access.
//
// Usage:
//
//	for it := m.Begin(); it.Valid(); it.Next() {
//		fmt.Println(it.Key(), it.Value())
//	}
type Iterator[K comparable, V any, S Inline[K, V]] struct {
	stamp opt.Stamp
	m     *Map[K, V, S]
	t     *table[K, V] // non-nil: i is a table position; nil: i is a slot index
	i     int
}

// Valid reports whether the iterator points to an entry, i.e. it is
// neither End nor positioned on an erased table slot.
func (it Iterator[K, V, S]) Valid() bool {
	if it.m == nil {
		return false
	}
	if it.t != nil {
		return it.t.live(it.i)
	}
	return it.i >= 0 && it.i < int(it.m.n)
}

// Next advances to the following entry.
func (it *Iterator[K, V, S]) Next() {
	if it.t != nil {
		it.i = it.t.next(it.i)
		return
	}
	it.i++
}

// Prev steps back to the preceding entry. Prev from End moves to the
// last entry.
func (it *Iterator[K, V, S]) Prev() {
	if it.t != nil {
		it.i = it.t.prev(it.i)
		return
	}
	it.i--
}

// Equal reports whether both iterators denote the same position of the
// same map.
func (it Iterator[K, V, S]) Equal(o Iterator[K, V, S]) bool {
	return it.m == o.m && it.t == o.t && it.i == o.i
}

// Key returns the key of the current entry.
func (it Iterator[K, V, S]) Key() K {
	return it.entry().Key
}

// Value returns the value of the current entry.
func (it Iterator[K, V, S]) Value() V {
	return it.entry().Value
}

// Entry returns a copy of the current entry.
func (it Iterator[K, V, S]) Entry() Entry[K, V] {
	return *it.entry()
}

// SetValue replaces the value of the current entry in place.
func (it Iterator[K, V, S]) SetValue(value V) {
	it.entry().Value = value
}

func (it Iterator[K, V, S]) entry() *Entry[K, V] {
	if opt.Checked_ {
		it.check()
	}
	if it.t != nil {
		return &it.t.slots[it.i].Entry
	}
	return &it.m.slots[it.i]
}

func (it Iterator[K, V, S]) check() {
	if it.m == nil {
		panic("smallmap: zero iterator")
	}
	if !it.m.stamp.Same(it.stamp) || it.t != it.m.table {
		panic("smallmap: stale iterator")
	}
	if !it.Valid() {
		panic("smallmap: iterator does not point to an entry")
	}
}
