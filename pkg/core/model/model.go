//
//  Copyright © Altinn. All rights reserved.
//

// Package model defines the request and result types the engine
// exchanges with its callers.
package model

import (
	"time"

	"github.com/altinn/accessmgmt/pkg/core/assert"
	"github.com/altinn/accessmgmt/pkg/core/attribute"
	"github.com/altinn/accessmgmt/pkg/core/delegation"
)

// Outcome is the verdict of a delegability check.
type Outcome string

const (
	// OutcomeDelegable means the resource is delegable between the
	// resolved parties.
	OutcomeDelegable Outcome = "delegable"
	// OutcomeNotDelegable means the resource cannot be delegated
	// between the resolved parties, or one of them did not resolve.
	OutcomeNotDelegable Outcome = "not-delegable"
	// OutcomeInvalid means the request did not carry a coherent
	// identifier shape; see [Decision.Validation] for details.
	OutcomeInvalid Outcome = "invalid"
)

// Decision is the result of a delegability check.
//
// Callers can distinguish three cases: a verdict (Delegable or
// NotDelegable), a malformed request (Invalid, with structured
// validation errors), and an infrastructure failure, which is reported
// as an error from the check rather than as a Decision.
type Decision struct {
	Outcome Outcome `json:"outcome"`
	// Reason explains a NotDelegable outcome.
	Reason string `json:"reason,omitempty"`
	// Validation carries the structured errors for an Invalid outcome.
	Validation *assert.ProblemDetails `json:"validation,omitempty"`
	// Existing is the currently active grant for the coordinate, when
	// one exists.
	Existing *delegation.Change `json:"existing,omitempty"`
}

// DelegationRequest describes a grant or revoke action. From, To, and
// Resource are sparse attribute sets; the engine validates their shape
// and resolves them to the delegation key.
type DelegationRequest struct {
	From     []attribute.AttributeMatch `json:"from" yaml:"from"`
	To       []attribute.AttributeMatch `json:"to" yaml:"to"`
	Resource []attribute.AttributeMatch `json:"resource" yaml:"resource"`
	// PerformedByUserID is the user carrying out the action.
	PerformedByUserID int `json:"performedByUserId" yaml:"performedByUserId"`
}

// ResourceDelegation is one entry in an offered/received delegation
// listing: a currently active grant, enriched with party names from the
// registry where they resolve.
type ResourceDelegation struct {
	ResourceID string                       `json:"resourceId"`
	MatchType  delegation.ResourceMatchType `json:"matchType"`

	OfferedByPartyID int    `json:"offeredByPartyId"`
	OfferedByName    string `json:"offeredByName,omitempty"`

	CoveredByPartyID int    `json:"coveredByPartyId,omitempty"`
	CoveredByUserID  int    `json:"coveredByUserId,omitempty"`
	CoveredByName    string `json:"coveredByName,omitempty"`

	PerformedByUserID int       `json:"performedByUserId"`
	Created           time.Time `json:"created"`
}
