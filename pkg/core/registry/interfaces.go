//
//  Copyright © Altinn. All rights reserved.
//

package registry

import (
	"context"

	"github.com/google/uuid"
)

// PartyService looks up parties in the party registry.
//
// All methods are safe for concurrent use and return (nil, nil) when no
// matching party exists.
type PartyService interface {
	// GetPartyByID retrieves a party by its registry party id.
	GetPartyByID(ctx context.Context, partyID int) (*Party, error)

	// GetPartyByUUID retrieves a party by its registry uuid.
	GetPartyByUUID(ctx context.Context, partyUUID uuid.UUID) (*Party, error)

	// GetPartyBySSN retrieves a person party by national identity number.
	GetPartyBySSN(ctx context.Context, ssn string) (*Party, error)

	// GetPartyByOrgNumber retrieves an organization party by org number.
	GetPartyByOrgNumber(ctx context.Context, orgNumber string) (*Party, error)
}

// ProfileService looks up user profiles.
//
// All methods are safe for concurrent use and return (nil, nil) when no
// matching profile exists.
type ProfileService interface {
	// GetUserByID retrieves a profile by user id.
	GetUserByID(ctx context.Context, userID int) (*UserProfile, error)

	// GetUserByUsername retrieves an enterprise user profile by username.
	GetUserByUsername(ctx context.Context, username string) (*UserProfile, error)

	// GetUserBySSN retrieves a person's profile by national identity number.
	GetUserBySSN(ctx context.Context, ssn string) (*UserProfile, error)

	// GetUserByUUID retrieves a profile by user uuid.
	GetUserByUUID(ctx context.Context, userUUID uuid.UUID) (*UserProfile, error)
}

// ResourceService looks up entries in the resource registry.
//
// All methods are safe for concurrent use and return (nil, nil) when no
// matching resource exists.
type ResourceService interface {
	// GetResource retrieves a resource by its registry identifier.
	GetResource(ctx context.Context, resourceID string) (*ServiceResource, error)

	// GetResourceByApp retrieves the registry view of a legacy app by
	// its (service owner, app id) coordinate.
	GetResourceByApp(ctx context.Context, appOwner, appID string) (*ServiceResource, error)
}

// Service aggregates the three collaborator catalogs behind one handle.
type Service interface {
	Parties() PartyService
	Profiles() ProfileService
	Resources() ResourceService
}

// Factory creates registry [Service] instances.
//
// The factory pattern separates early initialization (setting config
// defaults) from late initialization (connecting to services). The
// engine guarantees configuration is fully loaded before NewService is
// called.
type Factory interface {
	// NewService creates a new registry service instance.
	NewService() (Service, error)
}
