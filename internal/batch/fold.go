// Package batch turns one user action over many files or lots into a
// sequence of independent backend calls. Every loop runs to completion: a
// failing item is recorded and the next item is attempted.
package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ProgressFunc receives done/total after each item.
type ProgressFunc func(done, total int)

// Failure pairs an item with the error it produced.
type Failure[T any] struct {
	Item T
	Err  error
}

// Result partitions the items of a fold by outcome, preserving input order.
type Result[T any] struct {
	Succeeded []T
	Failed    []Failure[T]
}

// Counts returns the number of succeeded and failed items.
func (r Result[T]) Counts() (succeeded, failed int) {
	return len(r.Succeeded), len(r.Failed)
}

// Errors returns the failure errors in order.
func (r Result[T]) Errors() []error {
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, f.Err)
	}
	return errs
}

// Fold applies op to each item strictly in order, one at a time.
func Fold[T any](items []T, op func(T) error, progress ProgressFunc) Result[T] {
	var result Result[T]
	for i, item := range items {
		if err := op(item); err != nil {
			result.Failed = append(result.Failed, Failure[T]{Item: item, Err: err})
		} else {
			result.Succeeded = append(result.Succeeded, item)
		}
		if progress != nil {
			progress(i+1, len(items))
		}
	}
	return result
}

// ErrNoTrades is reported for a file that parsed but yielded nothing.
var ErrNoTrades = errors.New("no transactions found")

// Upload is one file handed to a parse endpoint.
type Upload struct {
	Open func() (io.ReadCloser, error)
	Name string
}

// UploadFile opens path lazily, naming the upload after its base name.
func UploadFile(path string) Upload {
	return Upload{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// FileError is a per-file parse failure.
type FileError struct {
	Err  error
	File string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func fileErrors(failed []Failure[Upload]) []FileError {
	errs := make([]FileError, 0, len(failed))
	for _, f := range failed {
		errs = append(errs, FileError{File: f.Item.Name, Err: f.Err})
	}
	return errs
}

func parseUpload[P any](u Upload, parse func(io.Reader) (*P, error)) (*P, error) {
	rc, err := u.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer func() { _ = rc.Close() }()
	return parse(rc)
}
