package model

import (
	"errors"
	"fmt"
)

// ErrCellNotLive is returned when the chain no longer reports a cell as live.
var ErrCellNotLive = errors.New("cell is not live")

// ValidationError reports malformed cell, script, out-point or hash input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MissingSourceError reports that a truncated field was requested without a chain source.
type MissingSourceError struct {
	Field string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("chain source is needed to fetch %s", e.Field)
}

// ConsistencyError reports a fork whose rollback needs history that was already purged.
type ConsistencyError struct {
	Height   uint64
	Hash     Hash
	Boundary uint64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("block %s at height %d to revert has already been purged (unpurged boundary %d)", e.Hash, e.Height, e.Boundary)
}

// TransientIOError wraps a failed store or chain source call.
type TransientIOError struct {
	Op  string
	Err error
}

func (e *TransientIOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientIOError) Unwrap() error {
	return e.Err
}

// Transient wraps err as a TransientIOError unless it is nil or already classified.
func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	var validation *ValidationError
	var consistency *ConsistencyError
	if errors.As(err, &validation) || errors.As(err, &consistency) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return &TransientIOError{Op: op, Err: err}
}

func prefixField(prefix string, err error) error {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return &ValidationError{Field: prefix + "." + validation.Field, Reason: validation.Reason}
	}
	return fmt.Errorf("%s: %w", prefix, err)
}
