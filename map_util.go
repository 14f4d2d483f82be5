package smallmap

import (
	"math"
)

// ============================================================================
// Constants
// ============================================================================

const (
	// maxInline mirrors the largest array admitted by Inline.
	maxInline = 8

	// minTableLen is the smallest slot capacity of a promoted table.
	minTableLen = 2 * maxInline
)

// ============================================================================
// Utility Functions
// ============================================================================

// calcTableLen returns the slot capacity a table is created with, given
// the WithCapacity hint and the inline capacity it promotes from.
func calcTableLen(hint, inlineCap int) int {
	return max(hint, 2*inlineCap, minTableLen)
}

// clampHint narrows a capacity hint to the width stored in a Map.
func clampHint(capacity int) int32 {
	return int32(min(max(capacity, 0), math.MaxInt32))
}

// ============================================================================
// Helper Types
// ============================================================================

// noCopy may be added to structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
