package clinic

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyExists    = errors.New("record already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrInvalidInput     = errors.New("invalid input")
)

// ConstraintError reports a unique-constraint violation in the wording a
// Postgres-backed API would use, so clients can match on it.
type ConstraintError struct {
	Table  string
	Column string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("duplicate key value violates unique constraint %q", e.Table+"_"+e.Column+"_unique")
}

func (e *ConstraintError) Is(target error) bool { return target == ErrAlreadyExists }
