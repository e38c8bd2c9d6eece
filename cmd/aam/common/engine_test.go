//
//  Copyright © Altinn. All rights reserved.
//

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinn/accessmgmt/pkg/core/attribute"
)

func TestParseMatches(t *testing.T) {
	matches, err := ParseMatches([]string{
		"urn:altinn:person:identifier-no=07124912037",
		"urn:altinn:resource:resourceregistryid=scan-app",
	})
	require.NoError(t, err)
	assert.Equal(t, []attribute.AttributeMatch{
		{ID: "urn:altinn:person:identifier-no", Value: "07124912037"},
		{ID: "urn:altinn:resource:resourceregistryid", Value: "scan-app"},
	}, matches)
}

func TestParseMatchesEmptyValue(t *testing.T) {
	matches, err := ParseMatches([]string{"urn:altinn:partyid="})
	require.NoError(t, err)
	assert.Equal(t, "", matches[0].Value)
}

func TestParseMatchesRejectsMalformed(t *testing.T) {
	_, err := ParseMatches([]string{"no-equals-sign"})
	assert.Error(t, err)

	_, err = ParseMatches([]string{"=value-without-id"})
	assert.Error(t, err)
}

func TestParseMatchesEmptyInput(t *testing.T) {
	matches, err := ParseMatches(nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
