package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrDuplicateKey = errors.New("user already exists")
)

// StoreError wraps an underlying database failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Wrap returns err as a *StoreError for op, passing through nil and the
// package's own sentinel errors.
func Wrap(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateKey) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
