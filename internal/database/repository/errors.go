package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an operation that referenced an id that does not exist.
var ErrNotFound = errors.New("item not found")

// StorageError wraps a driver failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
