//
//  Copyright © Altinn. All rights reserved.
//

package attribute

// The URN catalog is a fixed, versioned vocabulary shared with external
// callers. Changing any of these strings breaks interoperability.
const (
	// RootNamespace is the namespace prefix common to the whole catalog.
	RootNamespace = "urn:altinn"

	// PersonIdentifierNo is a national identity number (SSN).
	PersonIdentifierNo = "urn:altinn:person:identifier-no"
	// PersonPartyID is the registry party id of a person.
	PersonPartyID = "urn:altinn:person:party-id"
	// PersonShortName is the display short name of a person.
	PersonShortName = "urn:altinn:person:shortname"
	// PersonFirstName is the first name of a person.
	PersonFirstName = "urn:altinn:person:firstname"
	// PersonMiddleName is the middle name of a person.
	PersonMiddleName = "urn:altinn:person:middlename"
	// PersonLastName is the last name of a person.
	PersonLastName = "urn:altinn:person:lastname"

	// OrganizationPartyID is the registry party id of an organization.
	OrganizationPartyID = "urn:altinn:organization:party-id"
	// OrganizationIdentifierNo is an organization number.
	OrganizationIdentifierNo = "urn:altinn:organization:identifier-no"
	// OrganizationName is the registered name of an organization.
	OrganizationName = "urn:altinn:organization:name"

	// EnterpriseUserUsername is the login name of an enterprise/system user.
	EnterpriseUserUsername = "urn:altinn:enterpriseuser:username"
	// EnterpriseUserPartyID is the party id behind an enterprise user.
	EnterpriseUserPartyID = "urn:altinn:enterpriseuser:party-id"

	// ResourceAppOwner is the service-owner code of a legacy app resource.
	ResourceAppOwner = "urn:altinn:resource:app-owner"
	// ResourceAppID is the app id of a legacy app resource.
	ResourceAppID = "urn:altinn:resource:app-id"
	// ResourceDelegable reports whether the resource may be delegated.
	ResourceDelegable = "urn:altinn:resource:delegable"
	// ResourceType is the resource registry type classification.
	ResourceType = "urn:altinn:resource:type"
	// ResourceRegistryID is the resource registry identifier.
	ResourceRegistryID = "urn:altinn:resource:resourceregistryid"

	// PartyID is a party id without a person/organization qualifier.
	PartyID = "urn:altinn:partyid"
	// UserID is a profile user id.
	UserID = "urn:altinn:userid"
)
