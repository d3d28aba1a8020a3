package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidProfile is returned when profile input is rejected at capture time.
var ErrInvalidProfile = errors.New("invalid connection profile")

// ErrConfigWrite is returned when the profile cannot be persisted.
var ErrConfigWrite = errors.New("config write failed")

// ErrProcessNotFound is returned when the target executable cannot be located or started.
var ErrProcessNotFound = errors.New("target application not found")

// ErrInjectionFailed is returned for any failure while waiting for or performing injection.
var ErrInjectionFailed = errors.New("module injection failed")

// ErrProcessExited is returned when the target exits before injection. It is always
// reported wrapped together with ErrInjectionFailed.
var ErrProcessExited = errors.New("target process exited")

// ErrLaunchInProgress is returned when a launch is requested while another is running.
var ErrLaunchInProgress = errors.New("launch already in progress")

// StageError tags a failure with the state the run was leaving.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// InjectionError wraps err so that it matches both ErrInjectionFailed and err.
func InjectionError(err error) error {
	if err == nil || errors.Is(err, ErrInjectionFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInjectionFailed, err)
}

// OutcomeOf classifies err into the caller-facing outcome.
// A nil error is a success; unknown errors are reported as injection failures
// since that is the only stage whose collaborator is fully external.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrConfigWrite):
		return OutcomeConfigWriteFailed
	case errors.Is(err, ErrProcessNotFound):
		return OutcomeProcessNotFound
	default:
		return OutcomeInjectionFailed
	}
}
