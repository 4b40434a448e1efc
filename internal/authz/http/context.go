// Package http exposes the authorization pipeline to gin routes and serves the
// organization-scoped endpoints built on it.
package http

import (
	"context"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
)

// principalKey is a context key type for storing the authenticated principal.
type principalKey struct{}

// tenantKey is a context key type for storing the resolved tenant context.
type tenantKey struct{}

// WithPrincipal stores the authenticated principal in the context.
func WithPrincipal(ctx context.Context, principal *authzDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the principal stored by Authorize.
// Returns (nil, false) on public routes.
func GetPrincipal(ctx context.Context) (*authzDomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*authzDomain.Principal)
	return principal, ok && principal != nil
}

// WithTenant stores the resolved tenant context in the context.
func WithTenant(ctx context.Context, tenant *authzDomain.TenantContext) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenant)
}

// GetTenant retrieves the tenant context stored by Authorize.
// Returns (nil, false) when the route is not organization-scoped.
func GetTenant(ctx context.Context) (*authzDomain.TenantContext, bool) {
	tenant, ok := ctx.Value(tenantKey{}).(*authzDomain.TenantContext)
	return tenant, ok && tenant != nil
}
