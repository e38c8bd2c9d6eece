//
//  Copyright © Altinn. All rights reserved.
//

package assert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinn/accessmgmt/pkg/core/attribute"
)

func pass(errs Errors, values []attribute.AttributeMatch) {}

func failWith(key, message string) Assertion {
	return func(errs Errors, values []attribute.AttributeMatch) {
		errs.Add(key, message)
	}
}

func TestErrorsAddDeduplicates(t *testing.T) {
	errs := Errors{}
	errs.Add("rule", "boom")
	errs.Add("rule", "boom")
	errs.Add("rule", "bang")

	assert.Equal(t, []string{"boom", "bang"}, errs["rule"])
}

func TestAll(t *testing.T) {
	errs := Errors{}
	All(pass, failWith("a", "first"), failWith("b", "second"))(errs, nil)

	assert.Len(t, errs, 2)
	assert.Equal(t, []string{"first"}, errs["a"])
	assert.Equal(t, []string{"second"}, errs["b"])
}

func TestAny(t *testing.T) {
	t.Run("one passing branch suppresses all failures", func(t *testing.T) {
		errs := Errors{}
		Any(failWith("a", "boom"), pass)(errs, nil)
		assert.Empty(t, errs)
	})

	t.Run("no passing branch merges every failure", func(t *testing.T) {
		errs := Errors{}
		Any(failWith("a", "boom"), failWith("b", "bang"))(errs, nil)
		assert.Equal(t, []string{"boom"}, errs["a"])
		assert.Equal(t, []string{"bang"}, errs["b"])
	})
}

func TestSingle(t *testing.T) {
	t.Run("exactly one passing succeeds", func(t *testing.T) {
		errs := Errors{}
		Single(pass, failWith("b", "boom"))(errs, nil)
		assert.Empty(t, errs)
	})

	t.Run("both passing fails", func(t *testing.T) {
		errs := Errors{}
		Single(pass, pass)(errs, nil)
		require.Contains(t, errs, singleKey)
		assert.Equal(t, []string{"2 assertions passed, exactly one must pass"}, errs[singleKey])
	})

	t.Run("none passing fails with merged branch errors", func(t *testing.T) {
		errs := Errors{}
		Single(failWith("a", "boom"), failWith("b", "bang"))(errs, nil)
		require.Contains(t, errs, singleKey)
		assert.Equal(t, []string{"boom"}, errs["a"])
		assert.Equal(t, []string{"bang"}, errs["b"])
	})
}

func TestEvaluate(t *testing.T) {
	assert.Nil(t, Evaluate(nil, pass))

	problem := Evaluate(nil, failWith("rule", "boom"))
	require.NotNil(t, problem)
	assert.Equal(t, 400, problem.Status)
	assert.Equal(t, []string{"boom"}, problem.Errors["rule"])
	assert.Equal(t, "rule", problem.Summary())
}

func TestJoin(t *testing.T) {
	assert.Nil(t, Join(nil, nil))
	assert.Nil(t, Join())

	joined := Join(
		Evaluate(nil, failWith("a", "boom")),
		nil,
		Evaluate(nil, failWith("b", "bang")),
	)
	require.NotNil(t, joined)
	assert.Equal(t, []string{"boom"}, joined.Errors["a"])
	assert.Equal(t, []string{"bang"}, joined.Errors["b"])
	assert.Equal(t, "a, b", joined.Summary())
}

func TestHasAttributeTypes(t *testing.T) {
	assertion := HasAttributeTypes(attribute.PersonIdentifierNo)

	errs := Errors{}
	assertion(errs, []attribute.AttributeMatch{
		{ID: "URN:ALTINN:PERSON:IDENTIFIER-NO", Value: "07124912037"},
	})
	assert.Empty(t, errs)

	errs = Errors{}
	assertion(errs, []attribute.AttributeMatch{
		{ID: attribute.OrganizationIdentifierNo, Value: "910459880"},
	})
	assert.Contains(t, errs, "HasAttributeTypes")
}

func TestAllAttributesHaveValues(t *testing.T) {
	errs := Errors{}
	AllAttributesHaveValues(errs, []attribute.AttributeMatch{
		{ID: attribute.PartyID, Value: "50002598"},
		{ID: attribute.UserID, Value: "  "},
	})

	require.Contains(t, errs, "AllAttributesHaveValues")
	assert.Len(t, errs["AllAttributesHaveValues"], 1)
}

func TestDefaultFrom(t *testing.T) {
	tests := []struct {
		name   string
		values []attribute.AttributeMatch
		valid  bool
	}{
		{
			name: "one person shape",
			values: []attribute.AttributeMatch{
				{ID: attribute.PersonIdentifierNo, Value: "07124912037"},
			},
			valid: true,
		},
		{
			name: "one organization shape",
			values: []attribute.AttributeMatch{
				{ID: attribute.OrganizationIdentifierNo, Value: "910459880"},
			},
			valid: true,
		},
		{
			name: "two shapes is ambiguous",
			values: []attribute.AttributeMatch{
				{ID: attribute.PersonIdentifierNo, Value: "07124912037"},
				{ID: attribute.OrganizationIdentifierNo, Value: "910459880"},
			},
			valid: false,
		},
		{
			name: "shape with empty value",
			values: []attribute.AttributeMatch{
				{ID: attribute.PersonIdentifierNo, Value: ""},
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := Evaluate(tt.values, DefaultFrom())
			if tt.valid {
				assert.Nil(t, problem)
			} else {
				assert.NotNil(t, problem)
			}
		})
	}
}

func TestDefaultToAcceptsEnterpriseUser(t *testing.T) {
	problem := Evaluate([]attribute.AttributeMatch{
		{ID: attribute.EnterpriseUserUsername, Value: "orgsystembruker"},
	}, DefaultTo())
	assert.Nil(t, problem)
}

func TestDefaultResource(t *testing.T) {
	t.Run("org number plus app id is valid", func(t *testing.T) {
		problem := Evaluate([]attribute.AttributeMatch{
			{ID: attribute.OrganizationIdentifierNo, Value: "910459880"},
			{ID: attribute.ResourceAppID, Value: "rf-0002"},
		}, DefaultResource())
		assert.Nil(t, problem)
	})

	t.Run("registry id plus app coordinates is ambiguous", func(t *testing.T) {
		problem := Evaluate([]attribute.AttributeMatch{
			{ID: attribute.ResourceRegistryID, Value: "scan-app"},
			{ID: attribute.OrganizationIdentifierNo, Value: "910459880"},
			{ID: attribute.ResourceAppID, Value: "rf-0002"},
		}, DefaultResource())
		require.NotNil(t, problem)
		assert.Contains(t, problem.Errors, "Single")
	})
}
