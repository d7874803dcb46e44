// Package store writes AzureGroup objects and status timestamps to the
// Kubernetes API.
//
// Spec writes are server-side apply patches owned by a single field manager,
// so writing the same spec twice leaves the object untouched. Status writes
// are JSON merge patches against the status subresource only. Each AzureGroup
// carries a controller owner reference to its AzureGroupManager and is removed
// by the garbage collector together with it.
package store
