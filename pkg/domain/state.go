package domain

import "time"

// State is a step of the launch state machine.
type State string

const (
	StateIdle               State = "idle"
	StateConfigWritten      State = "config_written"
	StateProcessStarted     State = "process_started"
	StateInjectionAttempted State = "injection_attempted"
	StateSucceeded          State = "succeeded"
	StateFailed             State = "failed"
)

// Terminal reports whether no further transition can leave s.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Outcome is the caller-facing result of a launch run.
// Each outcome maps to exactly one user-visible message.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeConfigWriteFailed Outcome = "config_write_failed"
	OutcomeProcessNotFound   Outcome = "process_not_found"
	OutcomeInjectionFailed   Outcome = "injection_failed"
)

// Message returns the human-readable text shown for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeSuccess:
		return "Game started and X3MP loaded."
	case OutcomeConfigWriteFailed:
		return "Could not write the connection settings."
	case OutcomeProcessNotFound:
		return "The target application was not found."
	case OutcomeInjectionFailed:
		return "The game started but X3MP could not be loaded."
	default:
		return "Unknown launch result."
	}
}

// Result is the snapshot returned at the end of a launch run.
type Result struct {
	// Outcome is the terminal classification of the run.
	Outcome Outcome

	// State is the last state reached (StateSucceeded or StateFailed).
	State State

	// FailedAt is the state the run was leaving when it failed.
	FailedAt State

	// ConfigPath is where the profile was written.
	ConfigPath string

	// PID of the started process, 0 if none was started.
	PID int

	StartedAt  time.Time
	InjectedAt time.Time

	// History lists every state entered, in order.
	History []State
}

// Succeeded is shorthand for Outcome == OutcomeSuccess.
func (r Result) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}
