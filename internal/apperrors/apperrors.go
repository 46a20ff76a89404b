package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrUsage = errors.New("invalid usage")

	ErrOpenTrace  = errors.New("unable to open coverage file")
	ErrOpenOutput = errors.New("unable to open output file")
	ErrOpenSource = errors.New("unable to open source file")

	ErrSourceMismatch  = errors.New("the coverage file does not match the source file")
	ErrMalformedBranch = errors.New("malformed branch record")
)

type OpenSourceError struct {
	Path string
	Err  error
}

func (e *OpenSourceError) Error() string {
	return fmt.Sprintf("unable to open source file '%s': %v", e.Path, e.Err)
}
func (e *OpenSourceError) Is(target error) bool { return target == ErrOpenSource }
func (e *OpenSourceError) Unwrap() error        { return e.Err }

type SourceMismatchError struct {
	Path  string
	Line  int
	Lines int
}

func (e *SourceMismatchError) Error() string {
	return fmt.Sprintf(
		"the coverage file does not match the source file '%s': line %d requested, file has %d lines",
		e.Path, e.Line, e.Lines,
	)
}
func (e *SourceMismatchError) Is(target error) bool { return target == ErrSourceMismatch }

type MalformedBranchError struct {
	LineNo int
	Record string
}

func (e *MalformedBranchError) Error() string {
	return fmt.Sprintf("malformed branch record at trace line %d: %q", e.LineNo, e.Record)
}
func (e *MalformedBranchError) Is(target error) bool { return target == ErrMalformedBranch }
