//go:build smallmap_checked

package opt

const Checked_ = true

// Stamp is the structural version of a map as seen by its iterators.
// It is bumped whenever entries may have moved, so a cursor taken
// before the change no longer compares as current.
// Use: go build -tags=smallmap_checked
type Stamp struct {
	v uint32
}

//go:nosplit
func (s *Stamp) Bump() {
	s.v++
}

//go:nosplit
func (s Stamp) Same(o Stamp) bool {
	return s.v == o.v
}
