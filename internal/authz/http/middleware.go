package http

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/attractionops/platform/internal/authz/pipeline"
	"github.com/attractionops/platform/internal/httputil"
)

// OrgIDParam is the route parameter naming the organization.
const OrgIDParam = "orgId"

// OrgHeader carries the organization identifier on routes without an orgId parameter.
const OrgHeader = "X-Organization-ID"

// Authorizer runs the authorization pipeline. *pipeline.Pipeline implements it.
type Authorizer interface {
	Execute(ctx context.Context, req pipeline.Request) (*pipeline.State, error)
}

// Authorize runs the authorization pipeline with the route's requirements.
//
// The bearer token is read from the Authorization header ("Bearer <token>",
// case-insensitive scheme). The organization identifier comes from the orgId route
// parameter, falling back to the X-Organization-ID header. A missing or malformed
// Authorization header is treated as a missing token.
//
// On success the Principal and TenantContext are attached to the request context
// (see GetPrincipal and GetTenant). On rejection the error is written with
// httputil.HandleErrorGin and the chain is aborted.
//
// Usage:
//
//	router.GET("/v1/organizations/:orgId/context",
//	    Authorize(p, pipeline.Requirements{Permissions: []authzDomain.Permission{"org:read"}}, logger),
//	    handler.ContextHandler)
func Authorize(authorizer Authorizer, reqs pipeline.Requirements, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := pipeline.Request{
			Token:         bearerToken(c.GetHeader("Authorization")),
			OrgIdentifier: orgIdentifier(c),
			Requirements:  reqs,
		}

		state, err := authorizer.Execute(c.Request.Context(), req)
		if err != nil {
			var stage string
			if state != nil {
				stage = state.RejectedBy
			}
			logger.Debug("authorization rejected",
				slog.String("stage", stage),
				slog.String("path", c.FullPath()),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		if state.Principal != nil {
			ctx = WithPrincipal(ctx, state.Principal)
		}
		if state.Tenant != nil {
			ctx = WithTenant(ctx, state.Tenant)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value, or "".
func bearerToken(header string) string {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

func orgIdentifier(c *gin.Context) string {
	if id := strings.TrimSpace(c.Param(OrgIDParam)); id != "" {
		return id
	}
	return strings.TrimSpace(c.GetHeader(OrgHeader))
}
