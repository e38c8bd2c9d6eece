//
//  Copyright © Altinn. All rights reserved.
//

package auditlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/altinn/accessmgmt/pkg/core/auditlog"
)

func TestChannelInstantiate(t *testing.T) {
	ch := make(chan *auditlog.Record, 10)
	stream := NewChannelLogger(ch)
	assert.NotNil(t, stream)
}

func TestChannelLoggerSend(t *testing.T) {
	ch := make(chan *auditlog.Record, 10)
	logger := &ChannelStream{ch: ch}

	record := &auditlog.Record{
		ID:        "test-id",
		Instant:   time.Now().UTC(),
		Operation: auditlog.OperationCheck,
		Decision:  "delegable",
	}

	err := logger.Send(record)
	assert.NoError(t, err)

	// Verify record was sent
	select {
	case received := <-ch:
		assert.Equal(t, "test-id", received.ID)
		assert.Equal(t, auditlog.OperationCheck, received.Operation)
		assert.Equal(t, "delegable", received.Decision)
	default:
		t.Fatal("Expected record to be sent to channel")
	}
}

func TestChannelLoggerClose(t *testing.T) {
	ch := make(chan *auditlog.Record, 10)
	logger := &ChannelStream{ch: ch}

	logger.Close()

	// Verify channel is closed
	_, ok := <-ch
	assert.False(t, ok, "Channel should be closed")
}

func TestChannelLoggerCloseWithNilChannel(t *testing.T) {
	logger := &ChannelStream{ch: nil}

	// Should not panic
	assert.NotPanics(t, func() {
		logger.Close()
	})
}
