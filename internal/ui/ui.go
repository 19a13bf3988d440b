// Package ui is briefli's interactive terminal surface: prompts for text,
// secrets, choices and confirmations, status lines, notes and spinners.
package ui

import (
	"context"
	"errors"
)

// ErrCancelled is returned by every prompt when the user aborts (Ctrl-C,
// closed input).
var ErrCancelled = errors.New("operation cancelled")

// Option is one choice of a Select prompt.
type Option struct {
	Value string
	Label string
}

// Validator checks a prompt answer; a non-nil error is shown and the prompt
// is asked again.
type Validator func(string) error

// Prompter is the interactive surface used by the session.
type Prompter interface {
	Intro(title string)
	Outro(message string)
	Cancel(message string)
	Note(body, title string)

	Info(message string)
	Success(message string)
	Warn(message string)
	Error(message string)

	Text(ctx context.Context, message string, validate Validator) (string, error)
	Password(ctx context.Context, message string, validate Validator) (string, error)
	Select(ctx context.Context, message string, options []Option) (string, error)
	Confirm(ctx context.Context, message string, initial bool) (bool, error)

	Spinner() Spinner
}

// Spinner reports progress of a long operation.
type Spinner interface {
	Start(message string)
	Stop(message string)
}
