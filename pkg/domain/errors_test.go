package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeOf(t *testing.T) {
	wrapped := func(err error) error {
		return &domain.StageError{Stage: domain.StateIdle, Err: fmt.Errorf("ctx: %w", err)}
	}

	assert.Equal(t, domain.OutcomeSuccess, domain.OutcomeOf(nil))
	assert.Equal(t, domain.OutcomeConfigWriteFailed, domain.OutcomeOf(wrapped(domain.ErrConfigWrite)))
	assert.Equal(t, domain.OutcomeProcessNotFound, domain.OutcomeOf(wrapped(domain.ErrProcessNotFound)))
	assert.Equal(t, domain.OutcomeInjectionFailed, domain.OutcomeOf(wrapped(domain.ErrInjectionFailed)))
	assert.Equal(t, domain.OutcomeInjectionFailed, domain.OutcomeOf(errors.New("boom")))
}

func TestInjectionError(t *testing.T) {
	assert.NoError(t, domain.InjectionError(nil))

	err := domain.InjectionError(domain.ErrProcessExited)
	assert.ErrorIs(t, err, domain.ErrInjectionFailed)
	assert.ErrorIs(t, err, domain.ErrProcessExited)

	// Already classified errors are not wrapped twice.
	again := domain.InjectionError(err)
	assert.Same(t, err, again)
}

func TestOutcomeMessagesAreDistinct(t *testing.T) {
	outcomes := []domain.Outcome{
		domain.OutcomeSuccess,
		domain.OutcomeConfigWriteFailed,
		domain.OutcomeProcessNotFound,
		domain.OutcomeInjectionFailed,
	}
	seen := map[string]bool{}
	for _, o := range outcomes {
		msg := o.Message()
		assert.False(t, seen[msg], "duplicate message for %s", o)
		seen[msg] = true
	}
}
