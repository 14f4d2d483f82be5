package smallmap

// Entry is a key-value pair stored by a Map, either in one of its inline
// slots or in its promoted table.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Inline is the set of inline slot arrays a Map can embed. The array
// length N is the promotion threshold: while a Map holds at most N
// entries they live inside the Map value itself, and the insertion of
// the (N+1)-th distinct key moves all of them into a heap table.
//
// N is limited to 8. Lookups in inline mode are linear scans, which stop
// paying off beyond a handful of entries.
type Inline[K comparable, V any] interface {
	~[1]Entry[K, V] | ~[2]Entry[K, V] | ~[3]Entry[K, V] | ~[4]Entry[K, V] |
		~[5]Entry[K, V] | ~[6]Entry[K, V] | ~[7]Entry[K, V] | ~[8]Entry[K, V]
}

// Map1 .. Map8 are Maps with 1 to 8 inline slots.
//
// Usage:
//
//	var m smallmap.Map4[string, int]
//	m.Store("a", 1)
type (
	Map1[K comparable, V any] = Map[K, V, [1]Entry[K, V]]
	Map2[K comparable, V any] = Map[K, V, [2]Entry[K, V]]
	Map3[K comparable, V any] = Map[K, V, [3]Entry[K, V]]
	Map4[K comparable, V any] = Map[K, V, [4]Entry[K, V]]
	Map5[K comparable, V any] = Map[K, V, [5]Entry[K, V]]
	Map6[K comparable, V any] = Map[K, V, [6]Entry[K, V]]
	Map7[K comparable, V any] = Map[K, V, [7]Entry[K, V]]
	Map8[K comparable, V any] = Map[K, V, [8]Entry[K, V]]
)
