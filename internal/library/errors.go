package library

import "errors"

// ErrConfiguration marks a metadata record that could not be parsed. Loads
// recover from it per node by falling back to schema defaults; it never
// aborts a whole library load.
var ErrConfiguration = errors.New("malformed metadata record")

// Reporter receives per-node failures that were recovered from locally. The
// tree has no global logger; callers inject whatever reporting they want.
type Reporter func(err error)

// Nop is a Reporter that discards everything.
func Nop(error) {}
