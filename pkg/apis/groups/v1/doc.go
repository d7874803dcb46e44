// Package v1 contains API Schema definitions for the kerwood.github.com v1 API group.
//
// This package defines the two custom resources the operator works with:
//
// ## AzureGroupManager
//
// AzureGroupManager is written by a human or a GitOps pipeline. It names the
// Azure AD (Entra ID) group whose membership should be projected into the
// cluster. The operator never changes its spec, it only stamps
// status.lastUpdate after every successful synchronisation.
//
// Example:
//
//	apiVersion: kerwood.github.com/v1
//	kind: AzureGroupManager
//	metadata:
//	  name: platform-team
//	  namespace: default
//	spec:
//	  groupUid: 6f1e1c38-2b3a-4a4e-9d7e-0d0f5c0a8b11
//
// ## AzureGroup
//
// AzureGroup is owned by the operator. It is created and fully overwritten on
// every successful cycle and carries an owner reference to its manager, so it
// is garbage collected together with the manager.
//
// +kubebuilder:object:generate=true
// +groupName=kerwood.github.com
package v1
