// Package convert turns an untrusted directory response into an AzureGroup spec.
//
// Convert is pure. A response without an id or a display name fails as a
// whole with a *ValidationError. A member without a mail address is only
// dropped from the member list and reported in Result.Rejected; the caller
// decides how to log it.
//
// The resource name is derived from the display name with Slugify, so the same
// directory group always maps to the same AzureGroup object.
package convert
