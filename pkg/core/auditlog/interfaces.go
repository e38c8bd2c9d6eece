//
//  Copyright © Altinn. All rights reserved.
//

// Package auditlog provides interfaces and implementations for audit
// logging of delegation decisions and mutations.
//
// Audit records capture every delegation check, grant, and revoke the
// engine performs, creating a trail for compliance and debugging. Each
// record includes the operation, the resolved delegation coordinate,
// the outcome, and a timestamp.
//
// # Built-in Implementations
//
// The package provides several stream implementations:
//   - [NewStdoutFactory]: Writes JSON records to stdout (default)
//   - [NewIoWriterFactory]: Writes JSON records to any io.Writer
//   - [NewNullFactory]: Discards all records (useful for benchmarks)
//
// # Custom Implementations
//
// To ship audit records elsewhere (e.g. a message broker or a SIEM):
//
//  1. Implement the [Factory] interface to create stream instances
//  2. Implement the [Stream] interface to handle record delivery
//  3. Use [options.WithAuditLog] when creating the engine
package auditlog

import (
	"time"

	"github.com/altinn/accessmgmt/pkg/core/delegation"
)

// Operation names the engine action an audit record describes.
type Operation string

const (
	// OperationCheck is a delegability check.
	OperationCheck Operation = "check"
	// OperationDelegate is a grant appended to the change log.
	OperationDelegate Operation = "delegate"
	// OperationRevoke is a revoke appended to the change log.
	OperationRevoke Operation = "revoke"
	// OperationQuery is an offered/received delegation listing.
	OperationQuery Operation = "query"
)

// Record is one audit trail entry.
type Record struct {
	// ID uniquely identifies the record.
	ID string `json:"id"`
	// Instant is when the engine performed the operation.
	Instant time.Time `json:"instant"`

	Operation Operation `json:"operation"`
	// Decision is the operation outcome ("delegable", "not-delegable",
	// "granted", "revoked", ...).
	Decision string `json:"decision"`

	// Change is the log event the operation produced or inspected,
	// when there was one.
	Change *delegation.Change `json:"change,omitempty"`

	// Metadata carries operation-specific context such as the resolved
	// resource id or the number of results returned.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Factory creates audit log [Stream] instances.
//
// The factory pattern enables deferred initialization of streaming
// resources. Early initialization (validating configuration) should
// happen during factory construction; late initialization (opening
// connections, allocating buffers) belongs in [Factory.NewStream]. The
// engine guarantees configuration is fully loaded before NewStream is
// called.
type Factory interface {
	// NewStream creates a new audit log stream, ready to receive
	// records via [Stream.Send].
	NewStream() (Stream, error)
}

// Stream delivers audit records to their destination.
//
// Implementations must be safe for concurrent use; the engine may call
// Send from multiple goroutines simultaneously. Send must not modify
// the record, and the caller may reuse it after Send returns. The
// engine logs send errors but does not retry.
type Stream interface {
	// Send delivers one audit record.
	Send(record *Record) error

	// Close releases any resources held by the stream, flushing
	// buffered records first. The stream must not be used afterwards.
	Close()
}
