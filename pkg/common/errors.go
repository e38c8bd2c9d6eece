//
//  Copyright © Altinn. All rights reserved.
//

// Package common provides shared types and utilities used across the
// access management packages.
//
// # Error Handling
//
// The [Error] type provides structured error information for delegation
// and resolution failures, classified by [Kind] so that callers can
// distinguish "not authorized" from "temporarily unable to authorize"
// without string matching.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies an [Error] into the failure taxonomy used throughout
// the engine.
//
// The taxonomy keeps three caller-visible outcomes distinct: a malformed
// request (KindValidation), a definitive negative answer (KindNotFound),
// and an inability to answer at all (KindInfrastructure). Conflating
// these would turn transient backend outages into denials.
type Kind int

// Error kinds, ordered roughly by severity.
const (
	// KindUnknown is the zero value and classifies errors that were not
	// created through this package.
	KindUnknown Kind = iota

	// KindValidation marks malformed or ambiguous caller input, such as
	// an attribute value that fails to parse as a party id.
	KindValidation

	// KindNotFound marks a definitive "no such entity" outcome that the
	// caller chose to surface as an error (e.g. revoking a delegation
	// that does not exist).
	KindNotFound

	// KindConflict marks a lost optimistic-concurrency race, such as an
	// append to the delegation change log that has been superseded by a
	// newer event for the same key.
	KindConflict

	// KindInfrastructure marks a retryable failure to reach a backing
	// service (party registry, profile service, change log storage).
	KindInfrastructure

	// KindCancelled marks an operation aborted by context cancellation.
	KindCancelled
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not-found"
	case KindConflict:
		return "conflict"
	case KindInfrastructure:
		return "infrastructure"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error represents a classified failure encountered during attribute
// resolution or delegation processing.
//
// Error is returned instead of ad hoc error values so that the
// orchestration layer and the REST endpoint can map failures to
// outcomes (and HTTP statuses) purely from the [Kind].
type Error struct {
	// Kind is the machine-readable classification.
	Kind Kind
	// Reason is a human-readable description of the failure.
	Reason string
	// Err is the wrapped cause, if any.
	Err error
}

// Error implements the error interface, returning a formatted string
// containing the reason and its classification.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s(%s): %v", e.Reason, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s(%s)", e.Reason, e.Kind)
}

// Unwrap returns the wrapped cause for use with [errors.Is] and [errors.As].
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new [Error] with the specified kind and message.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Reason: msg}
}

// NewErrorf creates a new [Error] with a formatted message.
func NewErrorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// WrapError creates a new [Error] wrapping an underlying cause.
func WrapError(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Reason: msg, Err: err}
}

// KindOf extracts the [Kind] from an error chain. Context cancellation
// reports [KindCancelled]; errors not created by this package report
// [KindUnknown].
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCancelled
	}

	return KindUnknown
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
