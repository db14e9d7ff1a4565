package ctrie

import "fmt"

// KeyNotFoundError is the error MustGet panics with when key is absent from
// the Map. It is the sole user-visible error this package produces; every
// other failure mode (an invariant violation reached through a logic bug)
// is a panic with a fixed string, not a KeyNotFoundError.
type KeyNotFoundError[K any] struct {
	Key K
}

func (e *KeyNotFoundError[K]) Error() string {
	return fmt.Sprintf("ctrie: key not found: %v", e.Key)
}
