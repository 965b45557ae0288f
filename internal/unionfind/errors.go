package unionfind

import "errors"

// ErrNotFound is returned when an operation references an id that is not
// present in the forest.
var ErrNotFound = errors.New("element not found")
