package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	"github.com/attractionops/platform/internal/authz/http/dto"
	authzUseCase "github.com/attractionops/platform/internal/authz/usecase"
	featureFlagUseCase "github.com/attractionops/platform/internal/featureflag/usecase"
	"github.com/attractionops/platform/internal/httputil"
	customValidation "github.com/attractionops/platform/internal/validation"
)

// OrganizationHandler serves the organization-scoped endpoints. Every route is
// mounted behind Authorize, which has already resolved the principal and tenant.
type OrganizationHandler struct {
	resolver      authzUseCase.TenantResolver
	memberUseCase authzUseCase.MemberUseCase
	evaluator     featureFlagUseCase.Evaluator
	logger        *slog.Logger
}

// NewOrganizationHandler creates a new organization handler with required dependencies.
func NewOrganizationHandler(
	resolver authzUseCase.TenantResolver,
	memberUseCase authzUseCase.MemberUseCase,
	evaluator featureFlagUseCase.Evaluator,
	logger *slog.Logger,
) *OrganizationHandler {
	return &OrganizationHandler{
		resolver:      resolver,
		memberUseCase: memberUseCase,
		evaluator:     evaluator,
		logger:        logger,
	}
}

// ListMyOrganizationsHandler lists the caller's active memberships.
// GET /v1/me/organizations - Requires authentication, not organization-scoped.
func (h *OrganizationHandler) ListMyOrganizationsHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authzDomain.ErrAuthRequired(), h.logger)
		return
	}

	items, err := h.resolver.ListOrganizations(c.Request.Context(), principal)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMembershipsToListResponse(items))
}

// ContextHandler returns the resolved tenant context.
// GET /v1/organizations/:orgId/context - Requires organization:read.
func (h *OrganizationHandler) ContextHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.MapTenantToResponse(tenant))
}

// FeatureHandler reports whether a feature is on for the organization and caller.
// GET /v1/organizations/:orgId/features/:key - Requires organization:read.
func (h *OrganizationHandler) FeatureHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	key := c.Param("key")
	if err := validation.Validate(key, validation.Required, customValidation.FlagKey); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}
	ctx := c.Request.Context()

	c.JSON(http.StatusOK, dto.FeatureStatusResponse{
		Key:     key,
		Enabled: tenant.IsSuperAdmin || h.evaluator.IsEnabled(ctx, key, tenant.OrgID, tenant.UserID),
		Tier:    h.evaluator.GetFeatureTier(ctx, key),
		Module:  h.evaluator.IsModuleFlag(ctx, key),
	})
}

// AttractionHandler resolves an attraction of the organization by id or slug.
// GET /v1/organizations/:orgId/attractions/:attraction - Requires attraction:read.
func (h *OrganizationHandler) AttractionHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	attraction, err := h.resolver.ResolveAttraction(c.Request.Context(), tenant.OrgID, c.Param("attraction"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAttractionToResponse(attraction))
}

// UpdateMemberRoleHandler changes the role of an organization member.
// PATCH /v1/organizations/:orgId/members/:userId/role - Requires member:update.
func (h *OrganizationHandler) UpdateMemberRoleHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	membership, err := h.memberUseCase.UpdateMemberRole(c.Request.Context(), tenant, req.ToInput(userID))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMembershipToResponse(membership))
}

// InviteMemberHandler invites a user into the organization.
// POST /v1/organizations/:orgId/invitations - Requires member:create.
// Returns 201 Created with the invited membership.
func (h *OrganizationHandler) InviteMemberHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	membership, err := h.memberUseCase.InviteMember(c.Request.Context(), tenant, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMembershipToResponse(membership))
}

// tenant reads the tenant context, writing TENANT_CONTEXT_MISSING when the route
// was mounted without an organization.
func (h *OrganizationHandler) tenant(c *gin.Context) (*authzDomain.TenantContext, bool) {
	tenant, ok := GetTenant(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authzDomain.ErrTenantContextMissing(), h.logger)
		return nil, false
	}
	return tenant, true
}
