//
//  Copyright © Altinn. All rights reserved.
//

package auditlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// AuditLogOptions configures the behavior of audit log output.
type AuditLogOptions struct {
	// PrettyPrint enables indented multi-line JSON output.
	// When false (default), output is compact single-line JSON.
	PrettyPrint bool
}

// IoWriterFactory creates [Stream] instances that write to an [io.Writer].
//
// Use [NewStdoutFactory] for stdout, or [NewIoWriterFactory] for a
// custom writer.
type IoWriterFactory struct {
	writer  io.Writer
	options AuditLogOptions
}

// IoWriterStream writes audit records as JSON to an [io.Writer].
//
// Each record is written as one JSON document followed by a newline,
// a format suitable for log aggregation systems and command-line
// tooling. Writes are atomic at the line level, so the stream is safe
// for concurrent use.
type IoWriterStream struct {
	writer  io.Writer
	options AuditLogOptions
}

// NewStdoutFactory creates a [Factory] that writes audit records to
// stdout. This is the default used by the engine when no audit log is
// explicitly configured, suitable for development and for production
// environments where stdout is captured by a log aggregator.
func NewStdoutFactory() Factory {
	return NewIoWriterFactory(os.Stdout)
}

// NewIoWriterFactory creates a [Factory] that writes audit records to
// the specified [io.Writer], e.g. a file or a buffer.
func NewIoWriterFactory(w io.Writer) Factory {
	return NewIoWriterFactoryWithOptions(w, AuditLogOptions{})
}

// NewIoWriterFactoryWithOptions creates a [Factory] that writes audit
// records to the specified [io.Writer] with the given options.
func NewIoWriterFactoryWithOptions(w io.Writer, opts AuditLogOptions) Factory {
	return &IoWriterFactory{
		writer:  w,
		options: opts,
	}
}

// NewStream creates a new [IoWriterStream] writing to the configured writer.
func (f *IoWriterFactory) NewStream() (Stream, error) {
	return newStream(f.writer, f.options), nil
}

func newStream(w io.Writer, opts AuditLogOptions) Stream {
	return &IoWriterStream{
		writer:  w,
		options: opts,
	}
}

// Send marshals the audit record to JSON and writes it to the
// configured writer, followed by a newline.
//
// Write errors are silently ignored: the engine must not fail
// authorization work because a log line could not be written.
func (s *IoWriterStream) Send(record *Record) error {
	var output []byte
	var err error
	if s.options.PrettyPrint {
		output, err = json.MarshalIndent(record, "", "  ")
	} else {
		output, err = json.Marshal(record)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(s.writer, string(output))
	return nil
}

// Close is a no-op for IoWriterStream. The underlying writer is not
// closed; the caller owns it (and stdout should never be closed).
func (s *IoWriterStream) Close() {}
