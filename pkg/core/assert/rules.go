//
//  Copyright © Altinn. All rights reserved.
//

package assert

import (
	"fmt"
	"strings"

	"github.com/altinn/accessmgmt/pkg/core/attribute"
)

// Rule keys used by the concrete assertions below.
const (
	hasAttributeTypesKey      = "HasAttributeTypes"
	allAttributesHasValuesKey = "AllAttributesHaveValues"
)

// HasAttributeTypes returns an assertion that passes iff every value's
// id case-insensitively matches one of the given attribute types.
func HasAttributeTypes(types ...string) Assertion {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[strings.ToLower(t)] = struct{}{}
	}

	return func(errs Errors, values []attribute.AttributeMatch) {
		for _, v := range values {
			if _, ok := allowed[strings.ToLower(v.ID)]; !ok {
				errs.Add(hasAttributeTypesKey,
					fmt.Sprintf("attribute %s is not one of [%s]", v.ID, strings.Join(types, ", ")))
			}
		}
	}
}

// AllAttributesHaveValues passes iff no attribute carries an empty value.
func AllAttributesHaveValues(errs Errors, values []attribute.AttributeMatch) {
	for _, v := range values {
		if strings.TrimSpace(v.Value) == "" {
			errs.Add(allAttributesHasValuesKey,
				fmt.Sprintf("attribute %s has no value", v.ID))
		}
	}
}

// DefaultFrom validates the attribute set identifying the offering
// party of a delegation: exactly one of the known identifier shapes
// must be supplied, and every supplied attribute must carry a value.
func DefaultFrom() Assertion {
	return defaultParty()
}

// DefaultTo validates the attribute set identifying the receiving party
// of a delegation. The accepted identifier shapes are the same as for
// [DefaultFrom], extended with enterprise user identifiers.
func DefaultTo() Assertion {
	return All(
		Single(
			HasAttributeTypes(attribute.PersonIdentifierNo),
			HasAttributeTypes(attribute.PersonPartyID),
			HasAttributeTypes(attribute.OrganizationPartyID),
			HasAttributeTypes(attribute.OrganizationIdentifierNo),
			HasAttributeTypes(attribute.EnterpriseUserUsername),
		),
		AllAttributesHaveValues,
	)
}

func defaultParty() Assertion {
	return All(
		Single(
			HasAttributeTypes(attribute.PersonIdentifierNo),
			HasAttributeTypes(attribute.PersonPartyID),
			HasAttributeTypes(attribute.OrganizationPartyID),
			HasAttributeTypes(attribute.OrganizationIdentifierNo),
		),
		AllAttributesHaveValues,
	)
}

// DefaultResource validates the attribute set identifying the resource
// of a delegation: exactly one of {app owner + app id, org party id +
// app id, resource registry id}, with all attributes carrying values.
func DefaultResource() Assertion {
	return All(
		Single(
			HasAttributeTypes(attribute.OrganizationIdentifierNo, attribute.ResourceAppID),
			HasAttributeTypes(attribute.OrganizationPartyID, attribute.ResourceAppID),
			HasAttributeTypes(attribute.ResourceAppOwner, attribute.ResourceAppID),
			HasAttributeTypes(attribute.ResourceRegistryID),
		),
		AllAttributesHaveValues,
	)
}
