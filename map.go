package smallmap

import (
	"fmt"
	"strings"

	"github.com/llxisdsh/smallmap/internal/opt"
)

// Map is an associative container for workloads that create very many
// small maps, most of which hold only a handful of entries.
//
// Up to N entries (the length of the inline array S) are stored inside
// the Map value itself, so a small Map costs no heap allocation and no
// hash table. Inserting the (N+1)-th distinct key promotes the Map: its
// entries move into a heap table, where they stay for the rest of the
// Map's life. Erasing never demotes; only Clear returns a promoted Map
// to inline mode, discarding its entries.
//
// Core properties:
//   - Zero-value ready: var m Map4[string, int]
//   - One API over both representations, including cursors (Iterator)
//   - Insertion order in inline mode; erase keeps the relative order of
//     the remaining entries
//
// Notes:
//   - Map is not safe for concurrent use. Synchronize externally, or use
//     Groups to manage many Maps shared between goroutines.
//   - Map must not be copied after first use; use Clone or CopyFrom.
//   - Keys that are not equal to themselves (NaN) are not supported.
type Map[K comparable, V any, S Inline[K, V]] struct {
	_     noCopy
	table *table[K, V] // non-nil iff promoted; n and slots are then unused
	n     int32        // inline entries, slots[:n]
	hint  int32        // WithCapacity
	stamp opt.Stamp
	slots S
}

// New creates a new Map instance. Direct initialization is also
// supported.
//
// Parameters:
//   - options: configuration options (WithCapacity)
func New[K comparable, V any, S Inline[K, V]](
	options ...func(*MapConfig),
) *Map[K, V, S] {
	m := &Map[K, V, S]{}
	cfg := parseOptions(options...)
	m.hint = clampHint(cfg.capacity)
	return m
}

// Promoted reports whether the entries live in the heap table.
func (m *Map[K, V, S]) Promoted() bool {
	return m.table != nil
}

// Len returns the number of entries in the map.
func (m *Map[K, V, S]) Len() int {
	if m.table != nil {
		return m.table.len()
	}
	return int(m.n)
}

// IsZero reports whether the map holds no entries.
func (m *Map[K, V, S]) IsZero() bool {
	return m.Len() == 0
}

// InlineCap returns N, the number of entries the map holds before it
// promotes.
func (m *Map[K, V, S]) InlineCap() int {
	return len(m.slots)
}

// lookup returns the inline slot holding key, or -1.
func (m *Map[K, V, S]) lookup(key K) int {
	for i := range int(m.n) {
		if m.slots[i].Key == key {
			return i
		}
	}
	return -1
}

// Find returns an iterator to the entry for key, or End if absent.
func (m *Map[K, V, S]) Find(key K) Iterator[K, V, S] {
	if t := m.table; t != nil {
		if i, ok := t.find(key); ok {
			return m.tableIter(i)
		}
		return m.tableIter(t.end())
	}
	if i := m.lookup(key); i >= 0 {
		return m.inlineIter(i)
	}
	return m.inlineIter(int(m.n))
}

// Count returns 1 if key is present and 0 otherwise.
func (m *Map[K, V, S]) Count(key K) int {
	if m.Has(key) {
		return 1
	}
	return 0
}

// Has reports whether key is present.
func (m *Map[K, V, S]) Has(key K) bool {
	if t := m.table; t != nil {
		_, ok := t.find(key)
		return ok
	}
	return m.lookup(key) >= 0
}

// Load retrieves the value for key.
func (m *Map[K, V, S]) Load(key K) (value V, ok bool) {
	if t := m.table; t != nil {
		if i, ok := t.find(key); ok {
			return t.slots[i].Value, true
		}
		return *new(V), false
	}
	if i := m.lookup(key); i >= 0 {
		return m.slots[i].Value, true
	}
	return *new(V), false
}

// At returns the value for key, or an error wrapping ErrKeyNotFound.
// It never inserts.
func (m *Map[K, V, S]) At(key K) (V, error) {
	if v, ok := m.Load(key); ok {
		return v, nil
	}
	return *new(V), keyNotFound(key)
}

// Insert adds key with value unless key is already present, in which
// case the stored value is left untouched. It returns an iterator to
// the entry for key and whether it was inserted.
//
// Inserting a new key into a full inline map promotes it.
func (m *Map[K, V, S]) Insert(key K, value V) (Iterator[K, V, S], bool) {
	if m.table == nil {
		if i := m.lookup(key); i >= 0 {
			return m.inlineIter(i), false
		}
		if i := int(m.n); i < len(m.slots) {
			m.slots[i] = Entry[K, V]{Key: key, Value: value}
			m.n++
			return m.inlineIter(i), true
		}
		m.promote()
	}
	pos, inserted, moved := m.table.insert(key, value)
	if moved {
		m.stamp.Bump()
	}
	return m.tableIter(pos), inserted
}

// promote moves the inline entries, in slot order, into a new table and
// zeroes the slots, so that exactly one representation holds entries.
func (m *Map[K, V, S]) promote() {
	t := newTable[K, V](calcTableLen(int(m.hint), len(m.slots)))
	for i := range int(m.n) {
		t.insert(m.slots[i].Key, m.slots[i].Value)
	}
	if opt.Checked_ && t.len() != int(m.n) {
		panic("smallmap: duplicate keys in inline slots")
	}
	m.slots = *new(S)
	m.n = 0
	m.table = t
	m.stamp.Bump()
}

// Ref returns a pointer to the value for key, inserting the zero value
// first if key is absent.
//
// The pointer is valid until the next insertion of a new key, Clear,
// CopyFrom or MoveFrom, or any Erase while the map is inline.
func (m *Map[K, V, S]) Ref(key K) *V {
	it, _ := m.Insert(key, *new(V))
	return &it.entry().Value
}

// Store sets the value for key, inserting it if absent.
func (m *Map[K, V, S]) Store(key K, value V) {
	if it, inserted := m.Insert(key, value); !inserted {
		it.entry().Value = value
	}
}

// LoadOrStore returns the existing value for key if present. Otherwise,
// it stores and returns the given value. The loaded result is true if
// the value was loaded, false if stored.
func (m *Map[K, V, S]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	it, inserted := m.Insert(key, value)
	return it.entry().Value, !inserted
}

// Erase removes key and returns the number of entries removed, 0 or 1.
//
// In inline mode the entries after the removed one shift down by one
// slot, keeping their relative order. A promoted map stays promoted
// even when it becomes empty.
func (m *Map[K, V, S]) Erase(key K) int {
	if t := m.table; t != nil {
		if t.erase(key) {
			return 1
		}
		return 0
	}
	i := m.lookup(key)
	if i < 0 {
		return 0
	}
	m.removeInline(i)
	return 1
}

// EraseIter removes the entry it points to and returns an iterator to
// the entry that followed it, or End.
//
// It panics if it does not point to an entry of m.
func (m *Map[K, V, S]) EraseIter(it Iterator[K, V, S]) Iterator[K, V, S] {
	m.mustOwn(it)
	if t := m.table; t != nil {
		next := t.next(it.i)
		t.eraseAt(it.i)
		return m.tableIter(next)
	}
	m.removeInline(it.i)
	return m.inlineIter(it.i)
}

// removeInline rotates slot i to the tail of the occupied range and
// destroys it there.
func (m *Map[K, V, S]) removeInline(i int) {
	last := int(m.n) - 1
	for ; i < last; i++ {
		m.slots[i] = m.slots[i+1]
	}
	m.slots[last] = Entry[K, V]{}
	m.n--
	m.stamp.Bump()
}

// Delete removes key, compatible with `sync.Map`.
func (m *Map[K, V, S]) Delete(key K) {
	m.Erase(key)
}

// LoadAndDelete removes key and returns its previous value if any.
func (m *Map[K, V, S]) LoadAndDelete(key K) (value V, loaded bool) {
	it := m.Find(key)
	if !it.Valid() {
		return *new(V), false
	}
	value = it.entry().Value
	m.EraseIter(it)
	return value, true
}

// Clear removes all entries. A promoted map releases its table and
// returns to inline mode.
func (m *Map[K, V, S]) Clear() {
	m.table = nil
	m.slots = *new(S)
	m.n = 0
	m.stamp.Bump()
}

// Clone returns a map holding a copy of every entry. A promoted map
// yields a promoted clone with its own table.
func (m *Map[K, V, S]) Clone() *Map[K, V, S] {
	c := &Map[K, V, S]{}
	c.CopyFrom(m)
	return c
}

// CopyFrom replaces the contents of m with a copy of src. Values are
// copied by assignment. Copying a map onto itself is a no-op.
func (m *Map[K, V, S]) CopyFrom(src *Map[K, V, S]) {
	if m == src {
		return
	}
	m.Clear()
	m.hint = src.hint
	if src.table != nil {
		m.table = src.table.clone()
		return
	}
	m.slots = src.slots
	m.n = src.n
}

// MoveFrom transfers the contents of src to m without copying entries
// out of a table, leaving src empty and inline.
func (m *Map[K, V, S]) MoveFrom(src *Map[K, V, S]) {
	if m == src {
		return
	}
	m.Clear()
	m.table, m.slots, m.n, m.hint = src.table, src.slots, src.n, src.hint
	src.Clear()
}

// Begin returns an iterator to the first entry, or End if empty.
func (m *Map[K, V, S]) Begin() Iterator[K, V, S] {
	if t := m.table; t != nil {
		return m.tableIter(t.next(-1))
	}
	return m.inlineIter(0)
}

// End returns the iterator one past the last entry.
func (m *Map[K, V, S]) End() Iterator[K, V, S] {
	if t := m.table; t != nil {
		return m.tableIter(t.end())
	}
	return m.inlineIter(int(m.n))
}

// Range calls yield for each entry until it returns false. The map must
// not be modified during Range, except for updating values through Ref
// or Store of existing keys.
func (m *Map[K, V, S]) Range(yield func(key K, value V) bool) {
	if t := m.table; t != nil {
		for i := range t.slots {
			if s := &t.slots[i]; s.used && !yield(s.Key, s.Value) {
				return
			}
		}
		return
	}
	for i := range int(m.n) {
		if !yield(m.slots[i].Key, m.slots[i].Value) {
			return
		}
	}
}

// All is the iterator version of Range.
func (m *Map[K, V, S]) All() func(yield func(K, V) bool) {
	return m.Range
}

// Keys is the iterator version for iterating over all keys.
func (m *Map[K, V, S]) Keys() func(yield func(K) bool) {
	return func(yield func(K) bool) {
		m.Range(func(key K, _ V) bool {
			return yield(key)
		})
	}
}

// Values is the iterator version for iterating over all values.
func (m *Map[K, V, S]) Values() func(yield func(V) bool) {
	return func(yield func(V) bool) {
		m.Range(func(_ K, value V) bool {
			return yield(value)
		})
	}
}

// ToMap collects all entries into a built-in map.
func (m *Map[K, V, S]) ToMap() map[K]V {
	a := make(map[K]V, m.Len())
	m.Range(func(key K, value V) bool {
		a[key] = value
		return true
	})
	return a
}

// FromMap stores every entry of source.
func (m *Map[K, V, S]) FromMap(source map[K]V) {
	for k, v := range source {
		m.Store(k, v)
	}
}

// String implement the formatting output interface fmt.Stringer
func (m *Map[K, V, S]) String() string {
	return strings.Replace(fmt.Sprint(m.ToMap()), "map[", "Map[", 1)
}

func (m *Map[K, V, S]) inlineIter(i int) Iterator[K, V, S] {
	return Iterator[K, V, S]{stamp: m.stamp, m: m, i: i}
}

func (m *Map[K, V, S]) tableIter(i int) Iterator[K, V, S] {
	return Iterator[K, V, S]{stamp: m.stamp, m: m, t: m.table, i: i}
}

// mustOwn panics unless it points to a current entry of m.
func (m *Map[K, V, S]) mustOwn(it Iterator[K, V, S]) {
	if it.m != m || it.t != m.table {
		panic("smallmap: iterator does not belong to this map")
	}
	if opt.Checked_ && !m.stamp.Same(it.stamp) {
		panic("smallmap: stale iterator")
	}
	if !it.Valid() {
		panic("smallmap: iterator does not point to an entry")
	}
}
