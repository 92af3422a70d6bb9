package errors

import (
	stdErrors "errors"
	"fmt"
)

// Stage names the step of an invocation that failed before or after the
// transport round trip.
type Stage string

const (
	StageMarshal Stage = "marshal request body"
	StageRead    Stage = "read response body"
	StageDecode  Stage = "decode response"
)

// Error is a local failure tagged with the stage it happened in.
type Error struct {
	stage Stage
	err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.stage, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Stage() Stage {
	return e.stage
}

// Wrap tags err with stage. A nil err stays nil.
func Wrap(err error, stage Stage) error {
	if err == nil {
		return nil
	}
	return &Error{stage: stage, err: err}
}

// StageOf reports the stage anywhere in err's chain.
func StageOf(err error) (Stage, bool) {
	var e *Error
	if !stdErrors.As(err, &e) {
		return "", false
	}
	return e.stage, true
}
