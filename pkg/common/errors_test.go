//
//  Copyright © Altinn. All rights reserved.
//

package common

import (
	"context"
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := NewError(KindValidation, "attribute has no value")
	assert.Equal(t, "attribute has no value(validation)", err.Error())

	wrapped := WrapError(KindInfrastructure, fmt.Errorf("connection refused"), "registry unreachable")
	assert.Equal(t, "registry unreachable(infrastructure): connection refused", wrapped.Error())
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindValidation, "validation"},
		{KindNotFound, "not-found"},
		{KindConflict, "conflict"},
		{KindInfrastructure, "infrastructure"},
		{KindCancelled, "cancelled"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(fmt.Errorf("plain")))
	assert.Equal(t, KindConflict, KindOf(NewError(KindConflict, "superseded")))
	assert.Equal(t, KindCancelled, KindOf(context.Canceled))
	assert.Equal(t, KindCancelled, KindOf(context.DeadlineExceeded))
}

func TestKindOfWalksChain(t *testing.T) {
	inner := NewError(KindNotFound, "no such delegation")
	outer := pkgerrors.Wrap(inner, "revoking")

	assert.Equal(t, KindNotFound, KindOf(outer))
	assert.True(t, IsKind(outer, KindNotFound))
	assert.False(t, IsKind(outer, KindConflict))
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := WrapError(KindInfrastructure, cause, "lookup failed")

	assert.ErrorIs(t, err, cause)
}

func TestNewErrorf(t *testing.T) {
	err := NewErrorf(KindConflict, "a newer change (id %d) already exists", 7)
	assert.Contains(t, err.Error(), "a newer change (id 7) already exists")
	assert.Equal(t, KindConflict, err.Kind)
}
