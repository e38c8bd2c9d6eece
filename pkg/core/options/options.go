//
//  Copyright © Altinn. All rights reserved.
//
// shared between pkg/core and internal/core, and thus must be in a separate package to avoid circular dependencies

package options

import (
	"github.com/altinn/accessmgmt/internal/logging"
	"github.com/altinn/accessmgmt/pkg/core/auditlog"
	"github.com/altinn/accessmgmt/pkg/core/config"
	"github.com/altinn/accessmgmt/pkg/core/delegation"
	"github.com/altinn/accessmgmt/pkg/core/registry"
)

var logger = logging.GetLogger("accessmgmt")
var agent = "accessmgmt"

// EngineOptions defines the configuration options for initializing the
// engine, including factories for audit logs, registries, and the
// delegation change log repository.
type EngineOptions struct {
	AuditLogFactory   auditlog.Factory
	RegistryFactory   registry.Factory
	RepositoryFactory delegation.RepositoryFactory
}

// EngineOptionsFunc is a function that modifies EngineOptions.
type EngineOptionsFunc func(*EngineOptions)

// WithAuditLog configures the audit log stream for the engine.
func WithAuditLog(factory auditlog.Factory) EngineOptionsFunc {
	return func(o *EngineOptions) {
		o.AuditLogFactory = factory
	}
}

// WithRegistry configures the registry factory for the engine.
func WithRegistry(factory registry.Factory) EngineOptionsFunc {
	return func(o *EngineOptions) {
		if config.VConfig.GetBool(config.MockEnabled) {
			logger.Warn(agent, "WithRegistry", "Ignoring registry factory as mock mode is enabled")
		} else {
			o.RegistryFactory = factory
		}
	}
}

// WithRepository configures the delegation change log repository for
// the engine.
func WithRepository(factory delegation.RepositoryFactory) EngineOptionsFunc {
	return func(o *EngineOptions) {
		o.RepositoryFactory = factory
	}
}
