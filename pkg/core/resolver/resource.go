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

func resourceAttributes(res *registry.ServiceResource) []attribute.AttributeMatch {
	out := []attribute.AttributeMatch{
		{ID: "resourceregistryid", Value: res.Identifier},
		{ID: "delegable", Value: strconv.FormatBool(res.Delegable)},
		{ID: "type", Value: res.ResourceType},
	}
	if res.AppOwner != "" {
		out = append(out, attribute.AttributeMatch{ID: "app-owner", Value: res.AppOwner})
	}
	if res.AppID != "" {
		out = append(out, attribute.AttributeMatch{ID: "app-id", Value: res.AppID})
	}
	return out
}

// newResourceNode resolves the urn:altinn:resource namespace against
// the resource registry. Resources are addressed either by registry id
// or, for legacy apps, by the (app-owner, app-id) coordinate.
func newResourceNode(resources registry.ResourceService) *Node {
	outputs := []string{"resourceregistryid", "delegable", "type", "app-owner", "app-id"}

	return NewNode("resource", []Leaf{
		{
			RequiredInputs:  []string{"resourceregistryid"},
			PossibleOutputs: outputs,
			Resolve: func(ctx context.Context, known []attribute.AttributeMatch) ([]attribute.AttributeMatch, error) {
				id, _ := attribute.Value(known, "resourceregistryid")
				res, err := resources.GetResource(ctx, id)
				if err != nil || res == nil {
					return nil, err
				}
				return resourceAttributes(res), nil
			},
		},
		{
			RequiredInputs:  []string{"app-owner", "app-id"},
			PossibleOutputs: outputs,
			Resolve: func(ctx context.Context, known []attribute.AttributeMatch) ([]attribute.AttributeMatch, error) {
				appOwner, _ := attribute.Value(known, "app-owner")
				appID, _ := attribute.Value(known, "app-id")
				res, err := resources.GetResourceByApp(ctx, appOwner, appID)
				if err != nil || res == nil {
					return nil, err
				}
				return resourceAttributes(res), nil
			},
		},
	})
}
