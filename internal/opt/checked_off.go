//go:build !smallmap_checked

package opt

const Checked_ = false

// Stamp is the structural version of a map as seen by its iterators.
// Without the smallmap_checked tag it occupies no space and every
// iterator compares as current.
type Stamp struct{}

//go:nosplit
func (s *Stamp) Bump() {
}

//go:nosplit
func (s Stamp) Same(_ Stamp) bool {
	return true
}
