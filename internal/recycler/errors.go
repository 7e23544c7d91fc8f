package recycler

import (
	"errors"
	"fmt"
)

// Sentinel errors for recycler operations.
var (
	// ErrDataSourceContract is returned when the data source answers
	// inconsistently with the snapshot the geometry cache was built from.
	ErrDataSourceContract = errors.New("data source contract violated")

	// ErrNotRegistered is returned when dequeuing an identifier with no
	// registered factory.
	ErrNotRegistered = errors.New("reuse identifier not registered")

	// ErrOwnership is returned when a cell is moved between the pool and
	// the content box by something that does not own it.
	ErrOwnership = errors.New("cell ownership violated")

	// ErrUnknownIndexPath is returned for index paths outside the cache.
	ErrUnknownIndexPath = errors.New("index path not in recycler")
)

// ContractError describes a data source or ownership violation.
type ContractError struct {
	Op     string
	Path   IndexPath
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return fmt.Sprintf("recycler: %s at %s: %s", e.Op, e.Path, e.Detail)
}

// Unwrap returns the underlying sentinel.
func (e *ContractError) Unwrap() error {
	if e.Err == nil {
		return ErrDataSourceContract
	}
	return e.Err
}
