package smallmap

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/llxisdsh/smallmap/internal/opt"
)

// MapStats is Map statistics.
//
// Notes:
//   - map statistics are intended to be used for diagnostic
//     purposes, not for production code. This means that breaking changes
//     may be introduced into this struct even between minor releases.
type MapStats struct {
	// Promoted reports whether the entries live in the heap table.
	Promoted bool
	// Size is the exact number of entries stored in the map.
	Size int
	// InlineCap is N, the number of inline slots.
	InlineCap int
	// InlineBytes is the size of the inline slot array.
	InlineBytes int
	// MapBytes is the size of the Map value, inline slots included.
	MapBytes int
	// CacheLines is the number of cache lines the Map value spans when
	// it starts on a cache line boundary.
	CacheLines int
	// TableSlots is the number of table slots in use, tombstones
	// included. Zero while inline.
	TableSlots int
	// Tombstones is the number of erased table slots awaiting
	// compaction. Zero while inline.
	Tombstones int
}

// ToString returns string representation of map stats.
func (s *MapStats) ToString() string {
	var sb strings.Builder
	sb.WriteString("MapStats{\n")
	sb.WriteString(fmt.Sprintf("Promoted:    %t\n", s.Promoted))
	sb.WriteString(fmt.Sprintf("Size:        %d\n", s.Size))
	sb.WriteString(fmt.Sprintf("InlineCap:   %d\n", s.InlineCap))
	sb.WriteString(fmt.Sprintf("InlineBytes: %d\n", s.InlineBytes))
	sb.WriteString(fmt.Sprintf("MapBytes:    %d\n", s.MapBytes))
	sb.WriteString(fmt.Sprintf("CacheLines:  %d\n", s.CacheLines))
	sb.WriteString(fmt.Sprintf("TableSlots:  %d\n", s.TableSlots))
	sb.WriteString(fmt.Sprintf("Tombstones:  %d\n", s.Tombstones))
	sb.WriteString("}\n")
	return sb.String()
}

func (s *MapStats) String() string {
	return s.ToString()
}

// Stats returns statistics for the Map. It is O(1).
func (m *Map[K, V, S]) Stats() *MapStats {
	const line = int(opt.CacheLineSize_)
	size := int(unsafe.Sizeof(*m))
	stats := &MapStats{
		Promoted:    m.table != nil,
		Size:        m.Len(),
		InlineCap:   len(m.slots),
		InlineBytes: int(unsafe.Sizeof(m.slots)),
		MapBytes:    size,
		CacheLines:  (size + line - 1) / line,
	}
	if t := m.table; t != nil {
		stats.TableSlots = len(t.slots)
		stats.Tombstones = t.dead
	}
	return stats
}
