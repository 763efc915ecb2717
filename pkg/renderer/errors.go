package renderer

import (
	"fmt"
	"slices"
)

// TileError reports the failure of a single tile task
type TileError struct {
	TileID int
	Err    error
}

func (e *TileError) Error() string {
	return fmt.Sprintf("tile %d: %v", e.TileID, e.Err)
}

func (e *TileError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking tile task
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// FailedTiles returns the sorted IDs of every TileError contained in err,
// including errors combined with errors.Join.
func FailedTiles(err error) []int {
	var ids []int
	var walk func(error)
	walk = func(e error) {
		switch u := e.(type) {
		case nil:
		case *TileError:
			ids = append(ids, u.TileID)
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	slices.Sort(ids)
	return slices.Compact(ids)
}
