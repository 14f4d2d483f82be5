package smallmap

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by At when the key is absent.
var ErrKeyNotFound = errors.New("smallmap: key not found")

func keyNotFound[K comparable](key K) error {
	return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
}
