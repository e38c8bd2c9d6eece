//
//  Copyright © Altinn. All rights reserved.
//

// Package registry defines the interfaces and data types for the
// external identity and resource catalogs the engine depends on: the
// party registry, the user profile service, and the resource registry.
//
// The engine treats these as attribute sources. It never persists
// parties, profiles, or resources; it only reads them during attribute
// resolution.
//
// # Not-found Semantics
//
// Every lookup method returns (nil, nil) when the entity does not
// exist. Errors are reserved for infrastructure failures (network,
// backend outage) and are classified [common.KindInfrastructure] so the
// orchestration layer never confuses "unknown party" with "registry
// unreachable".
//
// # Implementations
//
//   - [remote]: HTTP clients against URLs from the config package
//   - Fixture registry (internal): YAML-driven, used for mock mode and tests
package registry

import "github.com/google/uuid"

// Party is an entry in the party registry: a person, an organization,
// or the party behind an enterprise user.
type Party struct {
	PartyID   int       `json:"partyId" yaml:"partyId"`
	PartyUUID uuid.UUID `json:"partyUuid" yaml:"partyUuid"`
	// OrgNumber is set when the party is an organization.
	OrgNumber string `json:"orgNumber,omitempty" yaml:"orgNumber,omitempty"`
	// SSN is set when the party is a person.
	SSN  string `json:"ssn,omitempty" yaml:"ssn,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Person       *Person       `json:"person,omitempty" yaml:"person,omitempty"`
	Organization *Organization `json:"organization,omitempty" yaml:"organization,omitempty"`
}

// Person holds the person details of a party.
type Person struct {
	SSN        string `json:"ssn" yaml:"ssn"`
	Name       string `json:"name" yaml:"name"`
	FirstName  string `json:"firstName" yaml:"firstName"`
	MiddleName string `json:"middleName,omitempty" yaml:"middleName,omitempty"`
	LastName   string `json:"lastName" yaml:"lastName"`
}

// Organization holds the organization details of a party.
type Organization struct {
	OrgNumber string `json:"orgNumber" yaml:"orgNumber"`
	Name      string `json:"name" yaml:"name"`
}

// UserProfile is an entry in the user profile service. Profiles exist
// for persons and for enterprise/system users.
type UserProfile struct {
	UserID   int       `json:"userId" yaml:"userId"`
	UserUUID uuid.UUID `json:"userUuid" yaml:"userUuid"`
	Username string    `json:"username,omitempty" yaml:"username,omitempty"`
	PartyID  int       `json:"partyId" yaml:"partyId"`
	Party    *Party    `json:"party,omitempty" yaml:"party,omitempty"`
}

// ServiceResource is an entry in the resource registry: either a
// resource registered directly, or the registry view of a legacy app.
type ServiceResource struct {
	// Identifier is the resource registry id.
	Identifier string `json:"identifier" yaml:"identifier"`
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`
	// ResourceType classifies the resource (e.g. "genericaccessresource",
	// "altinnapp").
	ResourceType string `json:"resourceType" yaml:"resourceType"`
	// Delegable reports whether access to the resource may be delegated.
	Delegable bool `json:"delegable" yaml:"delegable"`
	// AppOwner and AppID are set when the resource represents a legacy app.
	AppOwner string `json:"appOwner,omitempty" yaml:"appOwner,omitempty"`
	AppID    string `json:"appId,omitempty" yaml:"appId,omitempty"`
}
