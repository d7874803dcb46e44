// Package directory reads group metadata and membership from Microsoft Graph.
//
// A Client issues two reads per group, GET /groups/{id} and
// GET /groups/{id}/members, and merges them into one RawGroupResponse. The
// response is untrusted: every optional field stays a pointer and nothing is
// defaulted. Validation happens in the convert package.
//
// The Client never retries. Each failure is returned as one of
//   - *AuthError when no bearer token could be obtained
//   - *StatusError for a non-2xx response
//   - *DecodeError for a body that is not the expected JSON
//   - *RequestError when the request could not be sent at all
//
// Tokens come from an oauth2.TokenSource; NewTokenSource builds one for the
// Azure AD client credentials flow.
package directory
