package todo

import (
	"errors"
	"fmt"
)

// Op names the persistence step that failed.
type Op string

const (
	OpRead   Op = "read"
	OpDecode Op = "decode"
	OpWrite  Op = "write"
)

// Sentinels for errors.Is. A *PersistenceError matches the one for its Op.
var (
	ErrPersistenceRead  = errors.New("persisted todos could not be read")
	ErrCorruptState     = errors.New("persisted todos are corrupt")
	ErrPersistenceWrite = errors.New("todos could not be persisted")
)

// PersistenceError is a store failure caught at the repository boundary.
type PersistenceError struct {
	Op  Op
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool {
	switch e.Op {
	case OpRead:
		return target == ErrPersistenceRead
	case OpDecode:
		return target == ErrCorruptState
	case OpWrite:
		return target == ErrPersistenceWrite
	}
	return false
}
