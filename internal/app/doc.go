// Package app wires the operator together and runs it.
//
// # Bootstrap
//
// NewApplication performs the complete startup sequence:
//
//  1. Builds the controller-runtime manager from the configuration: scheme,
//     metrics endpoint, health probes, optional leader election and an
//     optional namespace restriction for the cache.
//  2. Initializes the services (Services): the Graph token source and
//     directory client, the AzureGroup store, the event recorder and the
//     prometheus collectors.
//  3. Registers the AzureGroupManager reconciler and the health checks.
//
// Run starts the manager and blocks until the context is cancelled, which the
// serve command ties to SIGINT and SIGTERM. In-flight reconciliations are
// allowed to finish within the manager's graceful shutdown timeout.
//
// # Configuration
//
// The application receives a fully loaded and validated config.Config; it does
// not read flags or the environment itself.
package app
