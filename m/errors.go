package m

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("invalid network configuration")
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrEmptyDataset  = errors.New("empty dataset")
)

// ShapeError reports an example whose inputs or targets do not match the topology.
type ShapeError struct {
	Index int
	Field string
	Got   int
	Want  int
}

func (e ShapeError) Error() string {
	return fmt.Sprintf("example %d: %s has %d values, expected %d", e.Index, e.Field, e.Got, e.Want)
}

func (e ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
