package smallmap

// ============================================================================
// Configuration
// ============================================================================

// MapConfig defines configurable options for Map and Groups
// initialization.
type MapConfig struct {
	// capacity provides an estimate of the number of entries a Map will
	// eventually hold. It is only consulted when the Map promotes, to
	// presize the heap table so that it does not have to grow right
	// after promotion. While the Map is inline the hint costs nothing.
	// If zero or negative, the table starts at its minimum size.
	capacity int
}

// WithCapacity configures a new Map with a capacity hint of cap entries.
// Hints at or below the inline capacity have no effect. For Groups, the
// hint is applied to every group's Map.
func WithCapacity(cap int) func(*MapConfig) {
	return func(c *MapConfig) {
		c.capacity = cap
	}
}

func parseOptions(options ...func(*MapConfig)) MapConfig {
	var cfg MapConfig
	for _, o := range options {
		o(&cfg)
	}
	return cfg
}
