// Package api translates HTTP requests into service calls and service
// results into HTTP responses.
//
// Mutating handlers decode an enveloped body ({"destination": {...}} or
// {"activity": {...}}), strip empty-string fields and any client-supplied
// owner, validate the typed payload and pass the authenticated user as the
// actor. Errors go through HandleAPIError, which owns the status mapping.
package api
