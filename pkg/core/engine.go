//
//  Copyright © Altinn. All rights reserved.
//

// Package core provides the primary interface for the Altinn access
// management engine, which answers delegation questions over a
// URN-keyed attribute model: who a set of identifiers resolves to,
// whether a resource may be delegated between two parties, and which
// delegations are currently in force.
//
// The engine composes three subsystems: an attribute resolver tree that
// derives party/user/resource facts from sparse input via the external
// registries, an assertion framework that validates identifier shapes,
// and an append-only delegation change log from which current state is
// derived.
//
// # Quick Start
//
// Create an engine with default options (stdout audit log, fixture
// registry, in-memory change log):
//
//	engine, err := core.NewEngine()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
// Check whether a resource is delegable between two parties:
//
//	decision, err := engine.CheckDelegation(ctx,
//	    []attribute.AttributeMatch{{ID: attribute.OrganizationIdentifierNo, Value: "910459880"}},
//	    []attribute.AttributeMatch{{ID: attribute.PersonIdentifierNo, Value: "07124912037"}},
//	    []attribute.AttributeMatch{{ID: attribute.ResourceRegistryID, Value: "scan-app"}},
//	)
//
// # Configuration
//
// The engine supports various configuration options via functional options:
//
//	engine, err := core.NewEngine(
//	    options.WithRegistry(remote.NewFactory()),
//	    options.WithAuditLog(auditlog.NewStdoutFactory()),
//	)
//
// See the [options] package for all available configuration options.
package core

import (
	"context"

	"github.com/pkg/errors"

	internal "github.com/altinn/accessmgmt/internal/core"
	"github.com/altinn/accessmgmt/internal/core/registry/mock"
	"github.com/altinn/accessmgmt/pkg/core/attribute"
	"github.com/altinn/accessmgmt/pkg/core/auditlog"
	"github.com/altinn/accessmgmt/pkg/core/config"
	"github.com/altinn/accessmgmt/pkg/core/delegation"
	"github.com/altinn/accessmgmt/pkg/core/delegation/memory"
	"github.com/altinn/accessmgmt/pkg/core/model"
	"github.com/altinn/accessmgmt/pkg/core/options"
	"github.com/altinn/accessmgmt/pkg/core/registry"
)

// Engine is the primary interface for delegation decisions and
// mutations.
//
// Implementations of Engine are safe for concurrent use by multiple
// goroutines.
type Engine interface {
	// Resolve derives the closure of the known attributes toward the
	// wanted set. Wanted ids that cannot be derived are absent from the
	// result; that is not an error.
	Resolve(ctx context.Context, attributes []attribute.AttributeMatch, wanted []string) ([]attribute.AttributeMatch, error)

	// CheckDelegation reports whether the resource may be delegated
	// from the party described by from to the recipient described by
	// to. Malformed input is reported as data in the Decision; errors
	// are reserved for infrastructure failures.
	CheckDelegation(ctx context.Context, from, to, resource []attribute.AttributeMatch) (*model.Decision, error)

	// Delegate appends a grant to the delegation change log and returns
	// the stored event.
	Delegate(ctx context.Context, req *model.DelegationRequest) (*delegation.Change, error)

	// Revoke appends a revoke to the delegation change log and returns
	// the stored event. Revoking a coordinate with no active grant
	// yields a not-found error.
	Revoke(ctx context.Context, req *model.DelegationRequest) (*delegation.Change, error)

	// GetOfferedDelegations lists the currently active delegations the
	// party has granted to others.
	GetOfferedDelegations(ctx context.Context, partyID int) ([]*model.ResourceDelegation, error)

	// GetReceivedDelegations lists the currently active delegations
	// granted to the party, whether keyed on the party itself or on a
	// user behind it.
	GetReceivedDelegations(ctx context.Context, partyID int) ([]*model.ResourceDelegation, error)

	// GetRegistry returns the registry service backing the engine,
	// useful for debugging and introspection.
	GetRegistry() registry.Service

	// Close releases the engine's resources, flushing the audit log.
	Close()
}

// EngineImpl is the default implementation of the [Engine] interface.
//
// EngineImpl wraps the internal engine and can be embedded or wrapped
// by applications that need to extend the engine's behavior. Use
// [NewEngine] to create a properly initialized instance.
type EngineImpl struct {
	instance *internal.Engine
}

// NewEngine creates and initializes a new [Engine] instance.
//
// By default, the engine uses a stdout audit log, the fixture registry,
// and an in-memory change log. Use functional options to configure
// production collaborators:
//
//	engine, err := core.NewEngine(
//	    options.WithRegistry(remote.NewFactory()),
//	    options.WithRepository(postgres.NewFactory()),
//	    options.WithAuditLog(auditlog.NewStdoutFactory()),
//	)
//
// NewEngine loads configuration from environment variables and config
// files before initializing. See the [config] package for details.
func NewEngine(engineOptions ...options.EngineOptionsFunc) (Engine, error) {
	err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "error loading config")
	}

	opts := &options.EngineOptions{
		AuditLogFactory:   auditlog.NewStdoutFactory(),
		RegistryFactory:   mock.NewFactory(),
		RepositoryFactory: &memory.Factory{},
	}
	for _, o := range engineOptions {
		o(opts)
	}

	instance, err := internal.NewEngine(opts)
	if err != nil {
		return nil, err
	}

	return &EngineImpl{instance: instance}, nil
}

// Resolve derives the closure of the known attributes toward the wanted set.
func (e *EngineImpl) Resolve(ctx context.Context, attributes []attribute.AttributeMatch, wanted []string) ([]attribute.AttributeMatch, error) {
	return e.instance.Resolve(ctx, attributes, wanted)
}

// CheckDelegation reports whether the resource may be delegated between
// the resolved parties.
func (e *EngineImpl) CheckDelegation(ctx context.Context, from, to, resource []attribute.AttributeMatch) (*model.Decision, error) {
	return e.instance.CheckDelegation(ctx, from, to, resource)
}

// Delegate appends a grant to the delegation change log.
func (e *EngineImpl) Delegate(ctx context.Context, req *model.DelegationRequest) (*delegation.Change, error) {
	return e.instance.Delegate(ctx, req)
}

// Revoke appends a revoke to the delegation change log.
func (e *EngineImpl) Revoke(ctx context.Context, req *model.DelegationRequest) (*delegation.Change, error) {
	return e.instance.Revoke(ctx, req)
}

// GetOfferedDelegations lists the currently active delegations the
// party has granted to others.
func (e *EngineImpl) GetOfferedDelegations(ctx context.Context, partyID int) ([]*model.ResourceDelegation, error) {
	return e.instance.GetOfferedDelegations(ctx, partyID)
}

// GetReceivedDelegations lists the currently active delegations granted
// to the party.
func (e *EngineImpl) GetReceivedDelegations(ctx context.Context, partyID int) ([]*model.ResourceDelegation, error) {
	return e.instance.GetReceivedDelegations(ctx, partyID)
}

// GetRegistry returns the registry service backing the engine.
func (e *EngineImpl) GetRegistry() registry.Service {
	return e.instance.GetRegistry()
}

// Close releases the engine's resources.
func (e *EngineImpl) Close() {
	e.instance.Close()
}
