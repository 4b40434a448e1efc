// Package pipeline runs the ordered authorization stages applied to every request:
// authenticate, resolve tenant, feature gate, role gate, permission gate, then the
// admin and super admin gates declared per route.
//
// The stage list is fixed at construction. Each stage reads what earlier stages
// stored in State and either passes or returns an AuthorizationError; the first
// rejection stops the run.
package pipeline

import (
	"context"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	authzUseCase "github.com/attractionops/platform/internal/authz/usecase"
	featureFlagUseCase "github.com/attractionops/platform/internal/featureflag/usecase"
)

// Stage names, in execution order.
const (
	StageAuthenticate   = "authenticate"
	StageResolveTenant  = "resolve_tenant"
	StageFeatureGate    = "feature_gate"
	StageRoleGate       = "role_gate"
	StagePermissionGate = "permission_gate"
	StageAdminGate      = "admin_gate"
	StageSuperAdminGate = "super_admin_gate"
)

// Requirements declares what a route needs. The zero value describes an
// authenticated, optionally org-scoped route with no further checks.
type Requirements struct {
	// Public skips authentication and tenant resolution.
	Public bool

	// SkipTenant marks authenticated routes that are not org-scoped.
	SkipTenant bool

	// Features must all be enabled for the organization.
	Features []string

	// Roles lists the acceptable roles; any one suffices.
	Roles []authzDomain.Role

	// Permissions lists acceptable permissions; any one suffices.
	Permissions []authzDomain.Permission

	// RequireAdmin restricts the route to organization owners and admins.
	RequireAdmin bool

	// RequireSuperAdmin restricts the route to platform super admins.
	RequireSuperAdmin bool
}

// Request is the transport-independent input of a pipeline run.
type Request struct {
	Token         string
	OrgIdentifier string
	Requirements  Requirements
}

// State accumulates the facts established by the stages of one run.
type State struct {
	Request   Request
	Principal *authzDomain.Principal
	Tenant    *authzDomain.TenantContext

	// RejectedBy names the stage that stopped the run, if any.
	RejectedBy string
}

// isSuperAdmin reports the bypass flag, preferring the resolved tenant context.
func (s *State) isSuperAdmin() bool {
	if s.Tenant != nil {
		return s.Tenant.IsSuperAdmin
	}
	return s.Principal != nil && s.Principal.IsSuperAdmin
}

// Stage is one step of the pipeline.
type Stage interface {
	Name() string
	Run(ctx context.Context, state *State) error
}

// Pipeline executes its stages strictly in order.
type Pipeline struct {
	stages []Stage
}

// Execute runs every stage against req. The returned State is never nil; on
// rejection it carries whatever was established before the failing stage.
func (p *Pipeline) Execute(ctx context.Context, req Request) (*State, error) {
	state := &State{Request: req}
	for _, stage := range p.stages {
		if err := stage.Run(ctx, state); err != nil {
			state.RejectedBy = stage.Name()
			return state, err
		}
	}
	return state, nil
}

// StageNames returns the stage names in execution order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, stage := range p.stages {
		names[i] = stage.Name()
	}
	return names
}

// NewPipeline builds a Pipeline from explicit stages. Callers wiring the standard
// authorization flow use New.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// New builds the standard authorization pipeline.
func New(
	authUseCase authzUseCase.AuthenticationUseCase,
	resolver authzUseCase.TenantResolver,
	evaluator featureFlagUseCase.Evaluator,
) *Pipeline {
	return NewPipeline(
		NewAuthenticateStage(authUseCase),
		NewResolveTenantStage(resolver),
		NewFeatureGateStage(evaluator),
		NewRoleGateStage(),
		NewPermissionGateStage(),
		NewAdminGateStage(),
		NewSuperAdminGateStage(),
	)
}
