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

func organizationAttributes(partyID string, org *registry.Organization) []attribute.AttributeMatch {
	return []attribute.AttributeMatch{
		{ID: "party-id", Value: partyID},
		{ID: "identifier-no", Value: org.OrgNumber},
		{ID: "name", Value: org.Name},
	}
}

// newOrganizationNode resolves attributes in the urn:altinn:organization
// namespace against the party registry.
func newOrganizationNode(parties registry.PartyService) *Node {
	outputs := []string{"party-id", "identifier-no", "name"}

	return NewNode("organization", []Leaf{
		{
			RequiredInputs:  []string{"identifier-no"},
			PossibleOutputs: outputs,
			Resolve: func(ctx context.Context, known []attribute.AttributeMatch) ([]attribute.AttributeMatch, error) {
				orgNumber, _ := attribute.Value(known, "identifier-no")
				party, err := parties.GetPartyByOrgNumber(ctx, orgNumber)
				if err != nil || party == nil || party.Organization == nil {
					return nil, err
				}
				return organizationAttributes(strconv.Itoa(party.PartyID), party.Organization), nil
			},
		},
		{
			RequiredInputs:  []string{"party-id"},
			PossibleOutputs: outputs,
			Resolve: func(ctx context.Context, known []attribute.AttributeMatch) ([]attribute.AttributeMatch, error) {
				value, _ := attribute.Value(known, "party-id")
				partyID, err := parseNumericID(attribute.OrganizationPartyID, value)
				if err != nil {
					return nil, err
				}
				party, err := parties.GetPartyByID(ctx, partyID)
				if err != nil || party == nil || party.Organization == nil {
					return nil, err
				}
				return organizationAttributes(value, party.Organization), nil
			},
		},
	})
}
