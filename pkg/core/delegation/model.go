//
//  Copyright © Altinn. All rights reserved.
//

// Package delegation defines the delegation change log: the append-only
// event model, the pure derivation of current state from the log, and
// the repository contract persistence backends implement.
//
// Delegations are never stored as mutable rows. Every grant and revoke
// is one immutable [Change] appended to the log; "is this currently
// delegated" is derived by picking, per delegation key, the event with
// the maximal (Created, ChangeID) ordering and checking its type. A log
// whose latest event for a key is a revoke is indistinguishable from a
// key with no events at all, as far as authorization is concerned.
package delegation

import "time"

// ChangeType discriminates grant and revoke events.
type ChangeType string

const (
	// ChangeGrant records that access was delegated.
	ChangeGrant ChangeType = "grant"
	// ChangeRevoke records that a previously delegated access was revoked.
	ChangeRevoke ChangeType = "revoke"
)

// ResourceMatchType discriminates how a change's ResourceID is keyed.
type ResourceMatchType string

const (
	// MatchAltinnApp keys the resource by "appOwner/appId" coordinates.
	MatchAltinnApp ResourceMatchType = "altinnapp"
	// MatchResourceRegistry keys the resource by resource registry id.
	MatchResourceRegistry ResourceMatchType = "resourceregistry"
)

// Change is one immutable event in the delegation change log. Changes
// are created on every grant or revoke action and never mutated or
// deleted afterwards.
type Change struct {
	// ChangeID is assigned by the repository on insert and increases
	// monotonically within one log.
	ChangeID int64 `json:"changeId" yaml:"changeId"`

	Type ChangeType `json:"type" yaml:"type"`

	// ResourceID identifies the delegated resource; its format depends
	// on MatchType.
	ResourceID string            `json:"resourceId" yaml:"resourceId"`
	MatchType  ResourceMatchType `json:"matchType" yaml:"matchType"`

	// OfferedByPartyID is the delegating party (grantor).
	OfferedByPartyID int `json:"offeredByPartyId" yaml:"offeredByPartyId"`
	// CoveredByPartyID is the receiving party; zero when the recipient
	// is keyed by user instead.
	CoveredByPartyID int `json:"coveredByPartyId,omitempty" yaml:"coveredByPartyId,omitempty"`
	// CoveredByUserID is the receiving user; zero when the recipient is
	// keyed by party instead.
	CoveredByUserID int `json:"coveredByUserId,omitempty" yaml:"coveredByUserId,omitempty"`

	// PerformedByUserID is the user that carried out the action.
	PerformedByUserID int `json:"performedByUserId" yaml:"performedByUserId"`

	// PolicyPath and PolicyVersionID reference the policy document the
	// change corresponds to in the external document store. The log,
	// not the document store, is authoritative for current state.
	PolicyPath      string `json:"policyPath,omitempty" yaml:"policyPath,omitempty"`
	PolicyVersionID string `json:"policyVersionId,omitempty" yaml:"policyVersionId,omitempty"`

	Created time.Time `json:"created" yaml:"created"`
}

// Key identifies the (resource, grantor, grantee) coordinate current
// state is derived per.
type Key struct {
	ResourceID       string            `json:"resourceId" yaml:"resourceId"`
	MatchType        ResourceMatchType `json:"matchType" yaml:"matchType"`
	OfferedByPartyID int               `json:"offeredByPartyId" yaml:"offeredByPartyId"`
	CoveredByPartyID int               `json:"coveredByPartyId,omitempty" yaml:"coveredByPartyId,omitempty"`
	CoveredByUserID  int               `json:"coveredByUserId,omitempty" yaml:"coveredByUserId,omitempty"`
}

// Key returns the delegation key the change belongs to.
func (c *Change) Key() Key {
	return Key{
		ResourceID:       c.ResourceID,
		MatchType:        c.MatchType,
		OfferedByPartyID: c.OfferedByPartyID,
		CoveredByPartyID: c.CoveredByPartyID,
		CoveredByUserID:  c.CoveredByUserID,
	}
}

// Newer reports whether c orders after other by (Created, ChangeID).
// A nil other always loses.
func (c *Change) Newer(other *Change) bool {
	if other == nil {
		return true
	}
	if !c.Created.Equal(other.Created) {
		return c.Created.After(other.Created)
	}
	return c.ChangeID > other.ChangeID
}

// Active reports whether the change, as the latest event for its key,
// leaves the delegation in force.
func (c *Change) Active() bool {
	return c.Type == ChangeGrant
}
