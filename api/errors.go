package api

import (
	"fmt"
	"strings"
)

// LineError ties a translation failure to the source line that caused it.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

// Unwrap exposes the underlying error kind to errors.Is.
func (e *LineError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause reach the underlying error.
func (e *LineError) Cause() error {
	return e.Err
}

// TranslationErrors lists every failing line when errors are collected.
type TranslationErrors []*LineError

func (es TranslationErrors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}

	return fmt.Sprintf("%d lines failed to translate:\n  %s",
		len(es), strings.Join(msgs, "\n  "))
}

// Unwrap exposes each line error to errors.Is and errors.As.
func (es TranslationErrors) Unwrap() []error {
	errs := make([]error, len(es))
	for i, e := range es {
		errs[i] = e
	}

	return errs
}
