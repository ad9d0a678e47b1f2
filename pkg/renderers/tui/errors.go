package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalidSubmission is returned when the collected values still fail
	// validation after every field was prompted.
	ErrInvalidSubmission = errors.New("tui: submission failed validation")
)
