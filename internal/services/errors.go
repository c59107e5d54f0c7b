package services

import "fmt"

// Typed errors mapped to HTTP status codes by the handlers.

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// PreconditionError signals that the resource exists but is not in a state
// the operation accepts, e.g. summarizing an interview that is still in
// progress. Callers should wait, not retry.
type PreconditionError struct{ Message string }

func (e *PreconditionError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

// RenderError wraps a PDF construction failure. Rendering is all-or-nothing;
// no partial document is ever returned alongside this error.
type RenderError struct{ Err error }

func (e *RenderError) Error() string { return fmt.Sprintf("failed to render PDF report: %v", e.Err) }

func (e *RenderError) Unwrap() error { return e.Err }
