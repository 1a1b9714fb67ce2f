package service

import "fmt"

// ValidationError reports input that fails a business rule before any write
// is attempted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a metric, entry, quick action or template that does
// not exist or is not in the expected active state.
type NotFoundError struct {
	Resource string
	Ref      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Ref)
}

func notFound(resource string, ref any) error {
	return &NotFoundError{Resource: resource, Ref: fmt.Sprint(ref)}
}

// ConflictError reports a slug collision with an existing active metric.
type ConflictError struct {
	Slug string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("an active metric with slug %q already exists", e.Slug)
}

// ReferentialIntegrityError surfaces a foreign-key violation from storage,
// e.g. a quick action pointing at a metric row that is gone.
type ReferentialIntegrityError struct {
	Msg string
}

func (e *ReferentialIntegrityError) Error() string { return e.Msg }
