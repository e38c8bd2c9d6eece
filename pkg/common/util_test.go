//
//  Copyright © Altinn. All rights reserved.
//

package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettyPrint(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		contains string
	}{
		{
			name:     "simple map",
			input:    map[string]interface{}{"key": "value", "number": 42},
			contains: `"key": "value"`,
		},
		{
			name:     "nested structure",
			input:    map[string]interface{}{"outer": map[string]interface{}{"inner": "data"}},
			contains: `"inner": "data"`,
		},
		{
			name:     "array",
			input:    []string{"item1", "item2", "item3"},
			contains: "item1",
		},
		{
			name:     "nil input",
			input:    nil,
			contains: "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			PrettyPrint(buf, tt.input)
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}

func TestPrettyPrintWithUnmarshalableData(t *testing.T) {
	// Channels cannot be marshaled to JSON
	input := map[string]interface{}{
		"channel": make(chan int),
	}

	buf := &bytes.Buffer{}
	PrettyPrint(buf, input)

	// Should print the error when marshaling fails
	assert.Contains(t, buf.String(), "json: unsupported type")
}
