package smallmap

import (
	"github.com/llxisdsh/pb"
)

// Groups is a concurrent collection of small maps, one per group key.
//
// It suits the workload Map is built for: a very large number of
// owners (sessions, vertices, documents) each carrying a handful of
// attributes. Every group's Map is created on first store and dropped
// once it becomes empty.
//
// A Map is not safe for concurrent use, so Groups only touches a
// group's Map inside pb.MapOf.ProcessEntry, while the bucket lock for
// that group is held. Operations on different groups proceed in
// parallel; operations on the same group are serialized.
//
// Usage:
//
//	var tags Groups[int64, string, string, [4]Entry[string, string]]
//	tags.Store(42, "env", "prod")
type Groups[G comparable, K comparable, V any, S Inline[K, V]] struct {
	m    pb.MapOf[G, *Map[K, V, S]]
	hint int32 // WithCapacity, applied to each group's Map
}

// NewGroups creates a new Groups instance. Direct initialization is
// also supported.
//
// Parameters:
//   - options: configuration options (WithCapacity)
func NewGroups[G comparable, K comparable, V any, S Inline[K, V]](
	options ...func(*MapConfig),
) *Groups[G, K, V, S] {
	cfg := parseOptions(options...)
	return &Groups[G, K, V, S]{hint: clampHint(cfg.capacity)}
}

// Compute runs fn on the Map of group g, creating it if needed, while
// holding the group's lock. The group is dropped if its Map is empty
// when fn returns.
//
// Notes:
//   - fn must not retain the Map or its iterators after returning.
//   - fn must not call other methods of g's Groups; keep it short.
func (g *Groups[G, K, V, S]) Compute(group G, fn func(m *Map[K, V, S])) {
	g.m.ProcessEntry(
		group,
		func(l *pb.EntryOf[G, *Map[K, V, S]]) (*pb.EntryOf[G, *Map[K, V, S]], *Map[K, V, S], bool) {
			if l != nil {
				fn(l.Value)
				if l.Value.IsZero() {
					return nil, nil, false
				}
				return l, l.Value, true
			}
			m := &Map[K, V, S]{hint: g.hint}
			fn(m)
			if m.IsZero() {
				return nil, nil, false
			}
			return &pb.EntryOf[G, *Map[K, V, S]]{Key: group, Value: m}, m, false
		},
	)
}

// view runs fn on the Map of group g, if present, under the group's
// lock, without creating or dropping it.
func (g *Groups[G, K, V, S]) view(group G, fn func(m *Map[K, V, S])) bool {
	_, ok := g.m.ProcessEntry(
		group,
		func(l *pb.EntryOf[G, *Map[K, V, S]]) (*pb.EntryOf[G, *Map[K, V, S]], *Map[K, V, S], bool) {
			if l == nil {
				return nil, nil, false
			}
			fn(l.Value)
			if l.Value.IsZero() {
				return nil, nil, true
			}
			return l, l.Value, true
		},
	)
	return ok
}

// Store sets the value for key in group g.
func (g *Groups[G, K, V, S]) Store(group G, key K, value V) {
	g.Compute(group, func(m *Map[K, V, S]) {
		m.Store(key, value)
	})
}

// LoadOrStore returns the existing value for key in group g if present.
// Otherwise, it stores and returns the given value.
func (g *Groups[G, K, V, S]) LoadOrStore(group G, key K, value V) (actual V, loaded bool) {
	g.Compute(group, func(m *Map[K, V, S]) {
		actual, loaded = m.LoadOrStore(key, value)
	})
	return actual, loaded
}

// Load retrieves the value for key in group g.
func (g *Groups[G, K, V, S]) Load(group G, key K) (value V, ok bool) {
	g.view(group, func(m *Map[K, V, S]) {
		value, ok = m.Load(key)
	})
	return value, ok
}

// Delete removes key from group g and reports whether it was present.
// The group is dropped when its last key is removed.
func (g *Groups[G, K, V, S]) Delete(group G, key K) bool {
	var removed bool
	g.view(group, func(m *Map[K, V, S]) {
		removed = m.Erase(key) == 1
	})
	return removed
}

// DeleteGroup drops group g with all its keys and reports whether it
// existed.
func (g *Groups[G, K, V, S]) DeleteGroup(group G) bool {
	_, ok := g.m.ProcessEntry(
		group,
		func(l *pb.EntryOf[G, *Map[K, V, S]]) (*pb.EntryOf[G, *Map[K, V, S]], *Map[K, V, S], bool) {
			return nil, nil, l != nil
		},
	)
	return ok
}

// Len returns the number of keys in group g.
func (g *Groups[G, K, V, S]) Len(group G) int {
	var n int
	g.view(group, func(m *Map[K, V, S]) {
		n = m.Len()
	})
	return n
}

// Snapshot returns a copy of the Map of group g, or nil if g does not
// exist. The copy is owned by the caller.
func (g *Groups[G, K, V, S]) Snapshot(group G) *Map[K, V, S] {
	var c *Map[K, V, S]
	g.view(group, func(m *Map[K, V, S]) {
		c = m.Clone()
	})
	return c
}

// Size returns the number of groups.
func (g *Groups[G, K, V, S]) Size() int {
	return g.m.Size()
}

// RangeGroups calls yield for each group key until it returns false.
// Groups created or dropped concurrently may or may not be visited.
func (g *Groups[G, K, V, S]) RangeGroups(yield func(group G) bool) {
	g.m.Range(func(group G, _ *Map[K, V, S]) bool {
		return yield(group)
	})
}

// Clear drops every group.
func (g *Groups[G, K, V, S]) Clear() {
	g.m.Clear()
}
