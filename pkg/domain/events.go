package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStageEnter EventType = "stage_enter"
	EventStageLeave EventType = "stage_leave"
	EventOutcome    EventType = "outcome"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StageEvent represents entry into or exit from a launch state.
type StageEvent struct {
	EventBase
	Stage State `json:"stage"`
	// Elapsed is set on leave events: time spent in Stage.
	Elapsed time.Duration `json:"elapsed,omitempty"`
	Err     error         `json:"-"`
}

// OutcomeEvent is emitted once per run, after the terminal state is reached.
type OutcomeEvent struct {
	EventBase
	Result Result `json:"result"`
	Err    error  `json:"-"`
}

// LifecycleHooks defines callbacks for launch observability.
type LifecycleHooks struct {
	OnStageEnter func(context.Context, *StageEvent)
	OnStageLeave func(context.Context, *StageEvent)
	OnOutcome    func(context.Context, *OutcomeEvent)
}

// Merge combines hooks so that both h and other are invoked, h first.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStageEnter: chainStage(h.OnStageEnter, other.OnStageEnter),
		OnStageLeave: chainStage(h.OnStageLeave, other.OnStageLeave),
		OnOutcome:    chainOutcome(h.OnOutcome, other.OnOutcome),
	}
}

func chainStage(a, b func(context.Context, *StageEvent)) func(context.Context, *StageEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *StageEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainOutcome(a, b func(context.Context, *OutcomeEvent)) func(context.Context, *OutcomeEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *OutcomeEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
