//
//  Copyright © Altinn. All rights reserved.
//

package resolver

import (
	"github.com/altinn/accessmgmt/pkg/core/attribute"
	"github.com/altinn/accessmgmt/pkg/core/registry"
)

// NewAltinnTree assembles the resolver tree for the urn:altinn catalog
// over the given registry collaborators. New subject namespaces are
// added as siblings under the root; the existing nodes stay untouched.
func NewAltinnTree(reg registry.Service) Resolver {
	return NewNode(attribute.RootNamespace,
		rootLeaves(reg.Parties(), reg.Profiles()),
		newPersonNode(reg.Parties()),
		newOrganizationNode(reg.Parties()),
		newEnterpriseUserNode(reg.Profiles()),
		newResourceNode(reg.Resources()),
	)
}

// NewAltinnService is shorthand for a resolution service over the
// standard urn:altinn tree.
func NewAltinnService(reg registry.Service) *Service {
	return NewService(NewAltinnTree(reg))
}
