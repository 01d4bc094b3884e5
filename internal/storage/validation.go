package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/folio/internal/service"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidBatchRun = errors.New("invalid batch run")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateBatchRun(run *service.BatchRun) error {
	if run == nil {
		return fmt.Errorf("%w: batch run", ErrNilParameter)
	}
	switch run.Kind {
	case service.KindBulkSell, service.KindContractNotes, service.KindMFStatements:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidBatchRun, run.Kind)
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidBatchRun)
	}
	if run.Succeeded < 0 || run.Failed < 0 {
		return fmt.Errorf("%w: negative counts", ErrInvalidBatchRun)
	}
	return nil
}
