// Package domain defines the multi-tenant authorization model: roles and their
// hierarchy, resource permissions, principals, memberships and the request-scoped
// tenant context consumed by business modules.
package domain

// Role is one of the fixed organization roles. The set is closed: every role
// must appear in AllRoles, roleLevels and rolePermissions.
type Role string

const (
	// RoleOwner is assigned at organization creation time and cannot be granted later.
	RoleOwner Role = "owner"

	// RoleAdmin manages every operational area of the organization.
	RoleAdmin Role = "admin"

	// RoleManager runs day-to-day operations (schedules, tickets, inventory).
	RoleManager Role = "manager"

	// RoleHR manages staff records and shifts.
	RoleHR Role = "hr"

	// RoleBoxOffice sells tickets and handles check-ins.
	RoleBoxOffice Role = "box_office"

	// RoleFinance handles payments and reporting.
	RoleFinance Role = "finance"

	// RoleActor is performing staff with access to their own schedule.
	RoleActor Role = "actor"

	// RoleScanner validates tickets at the gate.
	RoleScanner Role = "scanner"
)

// AllRoles lists every role from highest to lowest authority.
var AllRoles = []Role{
	RoleOwner,
	RoleAdmin,
	RoleManager,
	RoleHR,
	RoleBoxOffice,
	RoleFinance,
	RoleActor,
	RoleScanner,
}

// Hierarchy levels. Roles sharing a level cannot manage each other.
const (
	LevelUnknown    = 0
	LevelScanner    = 10
	LevelActor      = 20
	LevelSpecialist = 40
	LevelManager    = 60
	LevelAdmin      = 80
	LevelOwner      = 100
)

// Level returns the hierarchy level of r. Unknown roles resolve to LevelUnknown,
// which fails every CanManage check involving them.
func (r Role) Level() int {
	switch r {
	case RoleOwner:
		return LevelOwner
	case RoleAdmin:
		return LevelAdmin
	case RoleManager:
		return LevelManager
	case RoleHR, RoleBoxOffice, RoleFinance:
		return LevelSpecialist
	case RoleActor:
		return LevelActor
	case RoleScanner:
		return LevelScanner
	default:
		return LevelUnknown
	}
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r.Level() != LevelUnknown
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// ParseRole converts s to a Role, reporting false for unknown values.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}

// CanManage reports whether actor sits strictly above target in the hierarchy.
// A role never manages itself or a role on the same level.
func CanManage(actor, target Role) bool {
	actorLevel := actor.Level()
	targetLevel := target.Level()
	if actorLevel == LevelUnknown || targetLevel == LevelUnknown {
		return false
	}
	return actorLevel > targetLevel
}

// CanModifyRole reports whether actor may change a member from currentRole to newRole.
//
// Owners are immutable, nobody is promoted to owner through this path, and only an
// owner may create admins. Otherwise the actor must outrank both the current and the
// new role.
func CanModifyRole(actor, currentRole, newRole Role, isTargetOwner bool) bool {
	if isTargetOwner {
		return false
	}
	if newRole == RoleOwner {
		return false
	}
	if newRole == RoleAdmin && actor != RoleOwner {
		return false
	}
	return CanManage(actor, currentRole) && CanManage(actor, newRole)
}

// CanInviteToRole reports whether actor may invite a new member with role.
func CanInviteToRole(actor, role Role) bool {
	if role == RoleOwner {
		return false
	}
	if role == RoleAdmin && actor != RoleOwner {
		return false
	}
	return CanManage(actor, role)
}
