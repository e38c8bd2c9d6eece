//
//  Copyright © Altinn. All rights reserved.
//

// Package endpoint provides interfaces and implementations for servers
// exposing the access management engine over the network.
//
// # Available Implementations
//
//   - [rest]: HTTP/REST server
//
// # Usage
//
// Create and start an endpoint server:
//
//	engine, _ := core.NewEngine()
//	server, _ := rest.CreateServer(engine, 8080)
//	defer server.Stop(ctx)
package endpoint

import "context"

// Server is the interface for endpoint servers that can be gracefully
// stopped.
//
// Implementations must ensure that [Stop] completes any in-flight
// requests before returning.
type Server interface {
	// Stop gracefully shuts down the server, waiting for active
	// requests to complete or until the context is cancelled.
	Stop(context.Context) error
}
