//
//  Copyright © Altinn. All rights reserved.
//

package core

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/altinn/accessmgmt/internal/logging"
	"github.com/altinn/accessmgmt/pkg/common"
	"github.com/altinn/accessmgmt/pkg/core/assert"
	"github.com/altinn/accessmgmt/pkg/core/attribute"
	"github.com/altinn/accessmgmt/pkg/core/auditlog"
	"github.com/altinn/accessmgmt/pkg/core/config"
	"github.com/altinn/accessmgmt/pkg/core/delegation"
	"github.com/altinn/accessmgmt/pkg/core/model"
	"github.com/altinn/accessmgmt/pkg/core/options"
	"github.com/altinn/accessmgmt/pkg/core/registry"
	"github.com/altinn/accessmgmt/pkg/core/resolver"
)

var logger = logging.GetLogger("accessmgmt")

const agent = "engine"

// Engine orchestrates assertion validation, attribute resolution, and
// the delegation change log behind the public API.
type Engine struct {
	audit      auditlog.Stream
	registry   registry.Service
	repository delegation.Repository
	resolver   *resolver.Service
	auditEnv   map[string]string
}

// auditEnvMetadata evaluates the audit.env config mapping (metadata key
// to environment variable name) once, at engine construction.
func auditEnvMetadata() map[string]string {
	out := map[string]string{}
	for key, envVar := range config.VConfig.GetStringMapString(config.AuditEnv) {
		if value := os.Getenv(envVar); value != "" {
			out[key] = value
		}
	}
	return out
}

// NewEngine returns an engine instance wired from the given options.
func NewEngine(engineOptions *options.EngineOptions) (*Engine, error) {
	audit, err := engineOptions.AuditLogFactory.NewStream()
	if err != nil {
		return nil, err
	}

	reg, err := engineOptions.RegistryFactory.NewService()
	if err != nil {
		return nil, err
	}

	repo, err := engineOptions.RepositoryFactory.NewRepository()
	if err != nil {
		return nil, err
	}

	return &Engine{
		audit:      audit,
		registry:   reg,
		repository: repo,
		resolver:   resolver.NewAltinnService(reg),
		auditEnv:   auditEnvMetadata(),
	}, nil
}

// Close releases the engine's audit stream.
func (e *Engine) Close() {
	if e.audit != nil {
		e.audit.Close()
	}
}

// GetRegistry returns the registry service backing the engine.
func (e *Engine) GetRegistry() registry.Service {
	return e.registry
}

// GetRepository returns the delegation change log repository.
func (e *Engine) GetRepository() delegation.Repository {
	return e.repository
}

// Resolve derives the closure of the known attributes toward the wanted set.
func (e *Engine) Resolve(ctx context.Context, attributes []attribute.AttributeMatch, wanted []string) ([]attribute.AttributeMatch, error) {
	return e.resolver.Resolve(ctx, attributes, wanted)
}

// coordinate is a fully resolved delegation key plus the resource's
// delegability verdict.
type coordinate struct {
	key       delegation.Key
	delegable bool
}

var grantorWanted = []string{
	attribute.PartyID,
	attribute.PersonPartyID,
	attribute.OrganizationPartyID,
}

var recipientWanted = []string{
	attribute.UserID,
	attribute.PartyID,
	attribute.PersonPartyID,
	attribute.OrganizationPartyID,
	attribute.EnterpriseUserPartyID,
}

var resourceWanted = []string{
	attribute.ResourceRegistryID,
	attribute.ResourceDelegable,
	attribute.ResourceType,
	attribute.ResourceAppOwner,
	attribute.ResourceAppID,
}

func intAttribute(attributes []attribute.AttributeMatch, ids ...string) (int, error) {
	for _, id := range ids {
		if value, ok := attribute.Value(attributes, id); ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				return 0, common.NewErrorf(common.KindValidation, "attribute %q carries non-numeric value %q", id, value)
			}
			return n, nil
		}
	}
	return 0, nil
}

// resolveGrantor normalizes the offering party attributes to a party id.
// Zero means the party did not resolve.
func (e *Engine) resolveGrantor(ctx context.Context, from []attribute.AttributeMatch) (int, error) {
	resolved, err := e.resolver.Resolve(ctx, from, grantorWanted)
	if err != nil {
		return 0, err
	}
	return intAttribute(resolved, grantorWanted...)
}

// resolveRecipient normalizes the receiving party attributes. Person
// recipients are keyed by user id, everything else by party id; both
// zero means the recipient did not resolve.
func (e *Engine) resolveRecipient(ctx context.Context, to []attribute.AttributeMatch) (partyID, userID int, err error) {
	resolved, err := e.resolver.Resolve(ctx, to, recipientWanted)
	if err != nil {
		return 0, 0, err
	}

	userID, err = intAttribute(resolved, attribute.UserID)
	if err != nil || userID != 0 {
		return 0, userID, err
	}

	partyID, err = intAttribute(resolved,
		attribute.PartyID, attribute.OrganizationPartyID, attribute.PersonPartyID, attribute.EnterpriseUserPartyID)
	return partyID, 0, err
}

// resolveResource normalizes the resource attributes to a change log
// resource coordinate. found is false when the resource registry knows
// nothing about the resource.
func (e *Engine) resolveResource(ctx context.Context, res []attribute.AttributeMatch) (resourceID string, matchType delegation.ResourceMatchType, delegable, found bool, err error) {
	resolved, err := e.resolver.Resolve(ctx, res, resourceWanted)
	if err != nil {
		return "", "", false, false, err
	}

	delegableValue, ok := attribute.Value(resolved, attribute.ResourceDelegable)
	if !ok {
		return "", "", false, false, nil
	}
	delegable, err = strconv.ParseBool(delegableValue)
	if err != nil {
		return "", "", false, false, common.NewErrorf(common.KindValidation,
			"attribute %q carries non-boolean value %q", attribute.ResourceDelegable, delegableValue)
	}

	appOwner, ownerOK := attribute.Value(resolved, attribute.ResourceAppOwner)
	appID, appOK := attribute.Value(resolved, attribute.ResourceAppID)
	if ownerOK && appOK {
		return appOwner + "/" + appID, delegation.MatchAltinnApp, delegable, true, nil
	}

	registryID, _ := attribute.Value(resolved, attribute.ResourceRegistryID)
	return registryID, delegation.MatchResourceRegistry, delegable, true, nil
}

// evaluate validates the request shape and resolves the delegation
// coordinate. A non-nil Decision means the request cannot proceed
// (malformed or not delegable); a non-nil error means resolution itself
// failed and the answer is indeterminate.
func (e *Engine) evaluate(ctx context.Context, from, to, res []attribute.AttributeMatch) (*coordinate, *model.Decision, error) {
	problem := assert.Join(
		assert.Evaluate(from, assert.DefaultFrom()),
		assert.Evaluate(to, assert.DefaultTo()),
		assert.Evaluate(res, assert.DefaultResource()),
	)
	if problem != nil {
		return nil, &model.Decision{Outcome: model.OutcomeInvalid, Validation: problem}, nil
	}

	resourceID, matchType, delegable, found, err := e.resolveResource(ctx, res)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, &model.Decision{Outcome: model.OutcomeNotDelegable, Reason: "resource not found"}, nil
	}

	offeredBy, err := e.resolveGrantor(ctx, from)
	if err != nil {
		return nil, nil, err
	}
	if offeredBy == 0 {
		return nil, &model.Decision{Outcome: model.OutcomeNotDelegable, Reason: "offering party not found"}, nil
	}

	coveredByParty, coveredByUser, err := e.resolveRecipient(ctx, to)
	if err != nil {
		return nil, nil, err
	}
	if coveredByParty == 0 && coveredByUser == 0 {
		return nil, &model.Decision{Outcome: model.OutcomeNotDelegable, Reason: "receiving party not found"}, nil
	}

	coord := &coordinate{
		key: delegation.Key{
			ResourceID:       resourceID,
			MatchType:        matchType,
			OfferedByPartyID: offeredBy,
			CoveredByPartyID: coveredByParty,
			CoveredByUserID:  coveredByUser,
		},
		delegable: delegable,
	}
	if !delegable {
		return coord, &model.Decision{Outcome: model.OutcomeNotDelegable, Reason: "resource is not delegable"}, nil
	}
	return coord, nil, nil
}

// CheckDelegation reports whether the resource may be delegated between
// the resolved parties. Validation failures are returned as data in the
// Decision; only infrastructure failures surface as errors.
func (e *Engine) CheckDelegation(ctx context.Context, from, to, res []attribute.AttributeMatch) (*model.Decision, error) {
	logger.Debug(agent, "CheckDelegation", "Enter")
	defer logger.Debug(agent, "CheckDelegation", "Exit")

	coord, decision, err := e.evaluate(ctx, from, to, res)
	if err != nil {
		return nil, err
	}
	if decision != nil {
		e.auditDecision(auditlog.OperationCheck, string(decision.Outcome), nil, map[string]string{"reason": decision.Reason})
		return decision, nil
	}

	decision = &model.Decision{Outcome: model.OutcomeDelegable}
	current, err := e.repository.GetCurrentChange(ctx, coord.key)
	if err != nil {
		return nil, err
	}
	if current != nil && current.Active() {
		decision.Existing = current
	}

	e.auditDecision(auditlog.OperationCheck, string(decision.Outcome), decision.Existing, map[string]string{
		"resource": coord.key.ResourceID,
	})
	return decision, nil
}

func policyPath(key delegation.Key) string {
	recipient := fmt.Sprintf("p%d", key.CoveredByPartyID)
	if key.CoveredByUserID != 0 {
		recipient = fmt.Sprintf("u%d", key.CoveredByUserID)
	}
	return fmt.Sprintf("%s/%s/%d/%s/delegationpolicy.xml", key.MatchType, key.ResourceID, key.OfferedByPartyID, recipient)
}

// Delegate validates the request, resolves the delegation coordinate,
// and appends a grant to the change log.
func (e *Engine) Delegate(ctx context.Context, req *model.DelegationRequest) (*delegation.Change, error) {
	logger.Debug(agent, "Delegate", "Enter")
	defer logger.Debug(agent, "Delegate", "Exit")

	coord, decision, err := e.evaluate(ctx, req.From, req.To, req.Resource)
	if err != nil {
		return nil, err
	}
	if decision != nil {
		if decision.Outcome == model.OutcomeInvalid {
			return nil, common.NewErrorf(common.KindValidation, "request failed validation: %s", decision.Validation.Summary())
		}
		return nil, common.NewError(common.KindValidation, decision.Reason)
	}

	change := &delegation.Change{
		Type:              delegation.ChangeGrant,
		ResourceID:        coord.key.ResourceID,
		MatchType:         coord.key.MatchType,
		OfferedByPartyID:  coord.key.OfferedByPartyID,
		CoveredByPartyID:  coord.key.CoveredByPartyID,
		CoveredByUserID:   coord.key.CoveredByUserID,
		PerformedByUserID: req.PerformedByUserID,
		PolicyPath:        policyPath(coord.key),
		PolicyVersionID:   uuid.NewString(),
	}

	stored, err := e.repository.InsertChange(ctx, change)
	if err != nil {
		return nil, err
	}

	e.auditDecision(auditlog.OperationDelegate, "granted", stored, nil)
	return stored, nil
}

// Revoke validates the request, resolves the delegation coordinate, and
// appends a revoke to the change log. A coordinate with no active grant
// yields a not-found error.
func (e *Engine) Revoke(ctx context.Context, req *model.DelegationRequest) (*delegation.Change, error) {
	logger.Debug(agent, "Revoke", "Enter")
	defer logger.Debug(agent, "Revoke", "Exit")

	coord, decision, err := e.evaluate(ctx, req.From, req.To, req.Resource)
	if err != nil {
		return nil, err
	}
	if decision != nil && coord == nil {
		if decision.Outcome == model.OutcomeInvalid {
			return nil, common.NewErrorf(common.KindValidation, "request failed validation: %s", decision.Validation.Summary())
		}
		return nil, common.NewError(common.KindNotFound, decision.Reason)
	}

	current, err := e.repository.GetCurrentChange(ctx, coord.key)
	if err != nil {
		return nil, err
	}
	if current == nil || !current.Active() {
		return nil, common.NewError(common.KindNotFound, "no active delegation for the resolved coordinate")
	}

	change := &delegation.Change{
		Type:              delegation.ChangeRevoke,
		ResourceID:        coord.key.ResourceID,
		MatchType:         coord.key.MatchType,
		OfferedByPartyID:  coord.key.OfferedByPartyID,
		CoveredByPartyID:  coord.key.CoveredByPartyID,
		CoveredByUserID:   coord.key.CoveredByUserID,
		PerformedByUserID: req.PerformedByUserID,
		PolicyPath:        current.PolicyPath,
		PolicyVersionID:   uuid.NewString(),
	}

	stored, err := e.repository.InsertChange(ctx, change)
	if err != nil {
		return nil, err
	}

	e.auditDecision(auditlog.OperationRevoke, "revoked", stored, nil)
	return stored, nil
}

// partyName looks up the display name behind a party or user id for
// listing views. Lookup failures degrade to an empty name; listings
// must not fail because a name was unavailable.
func (e *Engine) partyName(ctx context.Context, cache map[string]string, partyID, userID int) string {
	cacheKey := fmt.Sprintf("p%d/u%d", partyID, userID)
	if name, ok := cache[cacheKey]; ok {
		return name
	}

	name := ""
	if partyID == 0 && userID != 0 {
		if profile, err := e.registry.Profiles().GetUserByID(ctx, userID); err == nil && profile != nil {
			partyID = profile.PartyID
		}
	}
	if partyID != 0 {
		if party, err := e.registry.Parties().GetPartyByID(ctx, partyID); err == nil && party != nil {
			name = party.Name
		}
	}

	cache[cacheKey] = name
	return name
}

func (e *Engine) shapeDelegations(ctx context.Context, changes []*delegation.Change) []*model.ResourceDelegation {
	names := make(map[string]string)
	out := make([]*model.ResourceDelegation, 0, len(changes))
	for _, c := range changes {
		out = append(out, &model.ResourceDelegation{
			ResourceID:        c.ResourceID,
			MatchType:         c.MatchType,
			OfferedByPartyID:  c.OfferedByPartyID,
			OfferedByName:     e.partyName(ctx, names, c.OfferedByPartyID, 0),
			CoveredByPartyID:  c.CoveredByPartyID,
			CoveredByUserID:   c.CoveredByUserID,
			CoveredByName:     e.partyName(ctx, names, c.CoveredByPartyID, c.CoveredByUserID),
			PerformedByUserID: c.PerformedByUserID,
			Created:           c.Created,
		})
	}
	return out
}

// GetOfferedDelegations lists the currently active delegations the
// party has granted to others.
func (e *Engine) GetOfferedDelegations(ctx context.Context, partyID int) ([]*model.ResourceDelegation, error) {
	changes, err := e.repository.GetAllCurrentChanges(ctx, delegation.Filter{
		OfferedByPartyIDs: []int{partyID},
	})
	if err != nil {
		return nil, err
	}

	out := e.shapeDelegations(ctx, changes)
	e.auditDecision(auditlog.OperationQuery, "offered", nil, map[string]string{
		"partyId": strconv.Itoa(partyID),
		"results": strconv.Itoa(len(out)),
	})
	return out, nil
}

// GetReceivedDelegations lists the currently active delegations granted
// to the party. Changes may be keyed on the party id directly or on a
// user id behind the party; the party id is normalized into both
// representations before querying.
func (e *Engine) GetReceivedDelegations(ctx context.Context, partyID int) ([]*model.ResourceDelegation, error) {
	changes, err := e.repository.GetAllCurrentChanges(ctx, delegation.Filter{
		CoveredByPartyIDs: []int{partyID},
	})
	if err != nil {
		return nil, err
	}

	resolved, err := e.resolver.Resolve(ctx,
		[]attribute.AttributeMatch{{ID: attribute.PartyID, Value: strconv.Itoa(partyID)}},
		[]string{attribute.UserID})
	if err != nil {
		return nil, err
	}
	if userID, err := intAttribute(resolved, attribute.UserID); err == nil && userID != 0 {
		userChanges, err := e.repository.GetAllCurrentChanges(ctx, delegation.Filter{
			CoveredByUserIDs: []int{userID},
		})
		if err != nil {
			return nil, err
		}
		changes = delegation.SortLog(append(changes, userChanges...))
	}

	out := e.shapeDelegations(ctx, changes)
	e.auditDecision(auditlog.OperationQuery, "received", nil, map[string]string{
		"partyId": strconv.Itoa(partyID),
		"results": strconv.Itoa(len(out)),
	})
	return out, nil
}

func (e *Engine) auditDecision(op auditlog.Operation, decision string, change *delegation.Change, metadata map[string]string) {
	if len(e.auditEnv) > 0 {
		if metadata == nil {
			metadata = map[string]string{}
		}
		for key, value := range e.auditEnv {
			if _, ok := metadata[key]; !ok {
				metadata[key] = value
			}
		}
	}

	record := &auditlog.Record{
		ID:        uuid.NewString(),
		Instant:   time.Now().UTC(),
		Operation: op,
		Decision:  decision,
		Change:    change,
		Metadata:  metadata,
	}

	if logger.IsDebugEnabled() {
		logger.Debugf(agent, "auditDecision", "operation: %s, decision: %s", op, decision)
		common.PrettyPrint(logger.Out(), record)
	}

	if e.audit != nil {
		if err := e.audit.Send(record); err != nil {
			logger.Errorf(agent, "auditDecision", "unable to send record to audit log: %+v", err)
		}
	}
}
