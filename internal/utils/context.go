// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, client address
// extraction, HTTP response writing, HTTP client initialization, JWT token
// generation and validation, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-api-gateway/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// PrincipalCtxKey is the key used to store the authenticated caller in the
// context. Handlers read it with GetPrincipalFromContext.
var PrincipalCtxKey = contextKey("principal")

// RequestContextCtxKey is the key used to store the per-request pipeline
// record shared by every middleware stage.
var RequestContextCtxKey = contextKey("requestContext")

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, PrincipalCtxKey, p)
}

// GetPrincipalFromContext retrieves the authenticated caller from the context.
//
// Returns the principal and an ok flag:
//   - ok == true : the request has been authenticated
//   - ok == false: no principal is attached (anonymous request)
//
// Example usage:
//
//	principal, ok := utils.GetPrincipalFromContext(ctx)
//	if !ok {
//	    // handle anonymous caller
//	}
func GetPrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(PrincipalCtxKey).(models.Principal)
	return p, ok
}

// WithRequestContext returns a copy of ctx carrying rc.
func WithRequestContext(ctx context.Context, rc *models.RequestContext) context.Context {
	return context.WithValue(ctx, RequestContextCtxKey, rc)
}

// GetRequestContext retrieves the pipeline record of the current request.
// It returns nil when the request did not pass through the entry middleware.
func GetRequestContext(ctx context.Context) *models.RequestContext {
	rc, _ := ctx.Value(RequestContextCtxKey).(*models.RequestContext)
	return rc
}
