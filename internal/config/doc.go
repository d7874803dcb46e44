// Package config holds the operator's runtime configuration.
//
// Configuration is assembled in layers, each overriding the previous one:
//
//  1. Default() values
//  2. an optional YAML file passed with --config
//  3. environment variables (AZURE_TENANT_ID, RECONCILE_TIME, ...)
//  4. command line flags that were set explicitly
//
// The first three layers are handled by Load; the cmd package applies the
// flags on top. Validate reports every problem at once.
//
// # File Format
//
//	tenantId: 00000000-0000-0000-0000-000000000000
//	clientId: 11111111-1111-1111-1111-111111111111
//	clientSecret: s3cr3t
//	reconcileTime: 300
//	retryTime: 10
//	logLevel: info
//	structuredLogs: true
//	watchNamespace: platform
//
// Intervals are whole seconds.
package config
