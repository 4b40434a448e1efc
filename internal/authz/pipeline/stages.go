package pipeline

import (
	"context"
	"slices"

	"github.com/google/uuid"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	authzUseCase "github.com/attractionops/platform/internal/authz/usecase"
	featureFlagUseCase "github.com/attractionops/platform/internal/featureflag/usecase"
)

// stageFunc adapts a function to the Stage interface.
type stageFunc struct {
	name string
	run  func(ctx context.Context, state *State) error
}

func (s *stageFunc) Name() string {
	return s.name
}

func (s *stageFunc) Run(ctx context.Context, state *State) error {
	return s.run(ctx, state)
}

// NewAuthenticateStage turns the bearer token into a Principal. Public routes pass
// through without a Principal.
func NewAuthenticateStage(authUseCase authzUseCase.AuthenticationUseCase) Stage {
	return &stageFunc{
		name: StageAuthenticate,
		run: func(ctx context.Context, state *State) error {
			if state.Request.Requirements.Public {
				return nil
			}
			principal, err := authUseCase.Authenticate(ctx, state.Request.Token)
			if err != nil {
				return err
			}
			state.Principal = principal
			return nil
		},
	}
}

// NewResolveTenantStage establishes the TenantContext when the request names an
// organization. Requests without one leave State.Tenant nil.
func NewResolveTenantStage(resolver authzUseCase.TenantResolver) Stage {
	return &stageFunc{
		name: StageResolveTenant,
		run: func(ctx context.Context, state *State) error {
			reqs := state.Request.Requirements
			if reqs.Public || reqs.SkipTenant {
				return nil
			}
			tenant, err := resolver.ResolveTenantContext(ctx, state.Principal, state.Request.OrgIdentifier)
			if err != nil {
				return err
			}
			state.Tenant = tenant
			return nil
		},
	}
}

// NewFeatureGateStage rejects with FEATURE_NOT_ENABLED unless every required feature
// is on for the organization. Super admins bypass the gate.
func NewFeatureGateStage(evaluator featureFlagUseCase.Evaluator) Stage {
	return &stageFunc{
		name: StageFeatureGate,
		run: func(ctx context.Context, state *State) error {
			features := state.Request.Requirements.Features
			if len(features) == 0 || state.isSuperAdmin() {
				return nil
			}

			orgID, userID := uuid.Nil, uuid.Nil
			if state.Tenant != nil {
				orgID = state.Tenant.OrgID
			}
			if state.Principal != nil {
				userID = state.Principal.ID
			}

			disabled := evaluator.DisabledFeatures(ctx, features, orgID, userID)
			if len(disabled) == 0 {
				return nil
			}

			var tier string
			for _, key := range disabled {
				if tier = evaluator.GetFeatureTier(ctx, key); tier != "" {
					break
				}
			}
			return authzDomain.ErrFeatureNotEnabled(disabled, tier)
		},
	}
}

// NewRoleGateStage rejects with ROLE_REQUIRED unless the resolved role is one of the
// declared roles. Super admins bypass the gate.
func NewRoleGateStage() Stage {
	return &stageFunc{
		name: StageRoleGate,
		run: func(_ context.Context, state *State) error {
			roles := state.Request.Requirements.Roles
			if len(roles) == 0 {
				return nil
			}
			if state.Tenant == nil {
				return authzDomain.ErrTenantContextMissing()
			}
			if state.Tenant.IsSuperAdmin || slices.Contains(roles, state.Tenant.Role) {
				return nil
			}
			return authzDomain.ErrRoleRequired(roles)
		},
	}
}

// NewPermissionGateStage rejects with PERMISSION_DENIED unless the tenant context
// grants at least one declared permission or carries the wildcard.
func NewPermissionGateStage() Stage {
	return &stageFunc{
		name: StagePermissionGate,
		run: func(_ context.Context, state *State) error {
			permissions := state.Request.Requirements.Permissions
			if len(permissions) == 0 {
				return nil
			}
			if state.Tenant == nil {
				return authzDomain.ErrTenantContextMissing()
			}
			if state.Tenant.HasWildcard() || authzDomain.HasAnyPermission(state.Tenant.Role, permissions) {
				return nil
			}
			return authzDomain.ErrPermissionDenied(permissions)
		},
	}
}

// NewAdminGateStage restricts routes declaring RequireAdmin to owners and admins of
// the resolved organization.
func NewAdminGateStage() Stage {
	return &stageFunc{
		name: StageAdminGate,
		run: func(_ context.Context, state *State) error {
			if !state.Request.Requirements.RequireAdmin {
				return nil
			}
			if state.Tenant == nil {
				return authzDomain.ErrTenantContextMissing()
			}
			if state.Tenant.IsSuperAdmin || state.Tenant.Role.Level() >= authzDomain.LevelAdmin {
				return nil
			}
			return authzDomain.ErrAdminRequired()
		},
	}
}

// NewSuperAdminGateStage restricts routes declaring RequireSuperAdmin to platform
// super admins. It does not need a tenant context.
func NewSuperAdminGateStage() Stage {
	return &stageFunc{
		name: StageSuperAdminGate,
		run: func(_ context.Context, state *State) error {
			if !state.Request.Requirements.RequireSuperAdmin {
				return nil
			}
			if state.Principal == nil || !state.Principal.IsAuthenticated {
				return authzDomain.ErrAuthRequired()
			}
			if !state.Principal.IsSuperAdmin {
				return authzDomain.ErrSuperAdminRequired()
			}
			return nil
		},
	}
}
