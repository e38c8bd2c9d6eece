//
//  Copyright © Altinn. All rights reserved.
//

package resolver

import (
	"context"
	"strconv"

	"github.com/altinn/accessmgmt/pkg/core/attribute"
	"github.com/altinn/accessmgmt/pkg/core/registry"
)

func personAttributes(partyID string, person *registry.Person) []attribute.AttributeMatch {
	out := []attribute.AttributeMatch{
		{ID: "party-id", Value: partyID},
		{ID: "identifier-no", Value: person.SSN},
		{ID: "shortname", Value: person.Name},
		{ID: "firstname", Value: person.FirstName},
		{ID: "lastname", Value: person.LastName},
	}
	if person.MiddleName != "" {
		out = append(out, attribute.AttributeMatch{ID: "middlename", Value: person.MiddleName})
	}
	return out
}

// newPersonNode resolves attributes in the urn:altinn:person namespace
// against the party registry. Both leaves produce the full person
// record, so either identifier is enough to reach the names.
func newPersonNode(parties registry.PartyService) *Node {
	outputs := []string{"party-id", "identifier-no", "shortname", "firstname", "middlename", "lastname"}

	return NewNode("person", []Leaf{
		{
			RequiredInputs:  []string{"identifier-no"},
			PossibleOutputs: outputs,
			Resolve: func(ctx context.Context, known []attribute.AttributeMatch) ([]attribute.AttributeMatch, error) {
				ssn, _ := attribute.Value(known, "identifier-no")
				party, err := parties.GetPartyBySSN(ctx, ssn)
				if err != nil || party == nil || party.Person == nil {
					return nil, err
				}
				return personAttributes(strconv.Itoa(party.PartyID), party.Person), nil
			},
		},
		{
			RequiredInputs:  []string{"party-id"},
			PossibleOutputs: outputs,
			Resolve: func(ctx context.Context, known []attribute.AttributeMatch) ([]attribute.AttributeMatch, error) {
				value, _ := attribute.Value(known, "party-id")
				partyID, err := parseNumericID(attribute.PersonPartyID, value)
				if err != nil {
					return nil, err
				}
				party, err := parties.GetPartyByID(ctx, partyID)
				if err != nil || party == nil || party.Person == nil {
					return nil, err
				}
				return personAttributes(value, party.Person), nil
			},
		},
	})
}
