package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks missing or malformed caller input.
	ErrValidation = errors.New("validation error")
	// ErrPreparation marks a failure while obtaining an upload target.
	ErrPreparation = errors.New("upload preparation error")
	// ErrLocalIO marks a local file move/read failure.
	ErrLocalIO = errors.New("local io error")
	// ErrNetwork marks a transport failure or non-2xx remote response.
	ErrNetwork = errors.New("network error")
	// ErrNotFound marks an expected local file that is missing.
	ErrNotFound = errors.New("not found")
)

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func Preparation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPreparation, fmt.Sprintf(format, args...))
}

func LocalIO(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrLocalIO, op, err)
}

func Network(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNetwork, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// StageError attributes a pipeline failure to the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Stage wraps err with the stage name, or returns nil if err is nil.
func Stage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
