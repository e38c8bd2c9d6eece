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

// newEnterpriseUserNode resolves the urn:altinn:enterpriseuser namespace
// against the profile service. Enterprise users are machine identities
// registered on an organization; the username is the only way in.
func newEnterpriseUserNode(profiles registry.ProfileService) *Node {
	return NewNode("enterpriseuser", []Leaf{
		{
			RequiredInputs:  []string{"username"},
			PossibleOutputs: []string{"party-id"},
			Resolve: func(ctx context.Context, known []attribute.AttributeMatch) ([]attribute.AttributeMatch, error) {
				username, _ := attribute.Value(known, "username")
				profile, err := profiles.GetUserByUsername(ctx, username)
				if err != nil || profile == nil {
					return nil, err
				}
				return []attribute.AttributeMatch{
					{ID: "party-id", Value: strconv.Itoa(profile.PartyID)},
				}, nil
			},
		},
	})
}
