package progress

import (
	"errors"
	"fmt"
)

// Typed errors returned by the engine. Controllers map these onto HTTP
// statuses; transport-level detail never leaks past ErrUnavailable.
var (
	ErrAlreadyEnrolled  = errors.New("user already enrolled in this course")
	ErrNotEnrolled      = errors.New("user not enrolled in this course")
	ErrQuizLocked       = errors.New("quiz is locked until all modules are completed")
	ErrQuizEmpty        = errors.New("course quiz has no questions")
	ErrQuizNotPassed    = errors.New("no passing quiz attempt for this course")
	ErrDuplicateRequest = errors.New("certificate request already exists")
	ErrModuleNotFound   = errors.New("module not found")
	ErrRequestNotFound  = errors.New("certificate request not found")
	ErrUnavailable      = errors.New("persistence service unavailable")
)

// unavailable wraps a raw database error into ErrUnavailable
func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
