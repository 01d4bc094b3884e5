package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	fast := RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
	permanent := errors.New("permanent")

	tests := []struct {
		failWith     error
		name         string
		failures     int
		wantAttempts int
		wantErr      bool
	}{
		{name: "succeeds first time", wantAttempts: 1},
		{name: "retries retryable error", failures: 2, failWith: &RetryableError{Err: errors.New("flaky"), Retryable: true}, wantAttempts: 3},
		{name: "stops on permanent error", failures: 3, failWith: permanent, wantAttempts: 1, wantErr: true},
		{name: "gives up after max attempts", failures: 5, failWith: context.DeadlineExceeded, wantAttempts: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := WithRetry(context.Background(), func() error {
				attempts++
				if attempts <= tt.failures {
					return tt.failWith
				}
				return nil
			}, fast)

			assert.Equal(t, tt.wantAttempts, attempts)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUserError(t *testing.T) {
	inner := errors.New("boom")
	err := NewUserError("could not load", inner)

	assert.Equal(t, "could not load: boom", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "just text", NewUserError("just text", nil).Error())
}

func TestValidationf(t *testing.T) {
	err := Validationf("principal must be positive, got %d", -1)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "principal must be positive, got -1")
}

func TestSetupLoggerTo_RejectsUnknownLevel(t *testing.T) {
	var sink nopWriter
	assert.ErrorIs(t, SetupLoggerTo(sink, "loud", "console"), ErrInvalidConfig)
	assert.ErrorIs(t, SetupLoggerTo(sink, "info", "xml"), ErrInvalidConfig)
	assert.NoError(t, SetupLoggerTo(sink, "debug", "json"))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
