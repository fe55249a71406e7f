package transfer

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound     = errors.New("file does not exist")
	ErrTableNotFound    = errors.New("table does not exist")
	ErrHeaderUnreadable = errors.New("could not read file headers")
)

// SchemaMismatchError reports a file whose column set does not match the
// target table.
type SchemaMismatchError struct {
	Expected []string
	Found    []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("file format does not match table structure, expected columns: %v, found: %v",
		e.Expected, e.Found)
}

// OperationError wraps any storage-level failure so nothing lower propagates
// past the engine boundary unlabelled.
type OperationError struct {
	Op  string // "import" or "export"
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("error during %s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
