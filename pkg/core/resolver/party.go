//
//  Copyright © Altinn. All rights reserved.
//

package resolver

import (
	"context"
	"strconv"

	"github.com/altinn/accessmgmt/pkg/common"
	"github.com/altinn/accessmgmt/pkg/core/attribute"
	"github.com/altinn/accessmgmt/pkg/core/registry"
)

// Root-level leaves bridge the unqualified party/user ids
// (urn:altinn:partyid, urn:altinn:userid) and the subject namespaces.
// They live on the root node because their inputs and outputs span
// namespaces; ids below are relative to "urn:altinn".

func parseNumericID(id, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, common.NewErrorf(common.KindValidation, "attribute %q carries non-numeric value %q", id, value)
	}
	return n, nil
}

func rootLeaves(parties registry.PartyService, profiles registry.ProfileService) []Leaf {
	return []Leaf{
		{
			// user profile: userid -> party id (+ ssn for persons)
			RequiredInputs:  []string{"userid"},
			PossibleOutputs: []string{"partyid", "person:identifier-no"},
			Resolve: func(ctx context.Context, known []attribute.AttributeMatch) ([]attribute.AttributeMatch, error) {
				value, _ := attribute.Value(known, "userid")
				userID, err := parseNumericID(attribute.UserID, value)
				if err != nil {
					return nil, err
				}
				profile, err := profiles.GetUserByID(ctx, userID)
				if err != nil || profile == nil {
					return nil, err
				}
				out := []attribute.AttributeMatch{
					{ID: "partyid", Value: strconv.Itoa(profile.PartyID)},
				}
				if profile.Party != nil && profile.Party.SSN != "" {
					out = append(out, attribute.AttributeMatch{ID: "person:identifier-no", Value: profile.Party.SSN})
				}
				return out, nil
			},
		},
		{
			// party registry: partyid -> subject-qualified identifiers
			RequiredInputs: []string{"partyid"},
			PossibleOutputs: []string{
				"person:party-id", "person:identifier-no",
				"organization:party-id", "organization:identifier-no",
			},
			Resolve: func(ctx context.Context, known []attribute.AttributeMatch) ([]attribute.AttributeMatch, error) {
				value, _ := attribute.Value(known, "partyid")
				partyID, err := parseNumericID(attribute.PartyID, value)
				if err != nil {
					return nil, err
				}
				party, err := parties.GetPartyByID(ctx, partyID)
				if err != nil || party == nil {
					return nil, err
				}
				var out []attribute.AttributeMatch
				switch {
				case party.Person != nil:
					out = append(out,
						attribute.AttributeMatch{ID: "person:party-id", Value: value},
						attribute.AttributeMatch{ID: "person:identifier-no", Value: party.Person.SSN},
					)
				case party.Organization != nil:
					out = append(out,
						attribute.AttributeMatch{ID: "organization:party-id", Value: value},
						attribute.AttributeMatch{ID: "organization:identifier-no", Value: party.Organization.OrgNumber},
					)
				}
				return out, nil
			},
		},
		{
			// user profile: ssn -> userid + party id
			RequiredInputs:  []string{"person:identifier-no"},
			PossibleOutputs: []string{"userid", "partyid"},
			Resolve: func(ctx context.Context, known []attribute.AttributeMatch) ([]attribute.AttributeMatch, error) {
				ssn, _ := attribute.Value(known, "person:identifier-no")
				profile, err := profiles.GetUserBySSN(ctx, ssn)
				if err != nil || profile == nil {
					return nil, err
				}
				return []attribute.AttributeMatch{
					{ID: "userid", Value: strconv.Itoa(profile.UserID)},
					{ID: "partyid", Value: strconv.Itoa(profile.PartyID)},
				}, nil
			},
		},
	}
}
