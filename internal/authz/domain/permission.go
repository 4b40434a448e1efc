package domain

import (
	"slices"
	"strings"
)

// Permission is a capability string of the form "resource:action".
type Permission string

// WildcardPermission grants everything. Only super-admin tenant contexts carry it.
const WildcardPermission Permission = "*"

// Resource identifies an area of the platform guarded by permissions.
type Resource string

const (
	ResourceOrganization Resource = "organization"
	ResourceMember       Resource = "member"
	ResourceAttraction   Resource = "attraction"
	ResourceSchedule     Resource = "schedule"
	ResourceShift        Resource = "shift"
	ResourceTicket       Resource = "ticket"
	ResourceCheckIn      Resource = "checkin"
	ResourceInventory    Resource = "inventory"
	ResourcePayment      Resource = "payment"
	ResourceReport       Resource = "report"
	ResourceSettings     Resource = "settings"
)

// AllResources lists every guarded resource.
var AllResources = []Resource{
	ResourceOrganization,
	ResourceMember,
	ResourceAttraction,
	ResourceSchedule,
	ResourceShift,
	ResourceTicket,
	ResourceCheckIn,
	ResourceInventory,
	ResourcePayment,
	ResourceReport,
	ResourceSettings,
}

// Action is the verb half of a permission.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	// ActionManage implies create, read, update and delete on the same resource.
	ActionManage Action = "manage"
)

// NewPermission builds the "resource:action" permission string.
func NewPermission(resource Resource, action Action) Permission {
	return Permission(string(resource) + ":" + string(action))
}

// Split returns the resource and action halves. ok is false when p is not of the
// form "resource:action".
func (p Permission) Split() (resource Resource, action Action, ok bool) {
	res, act, found := strings.Cut(string(p), ":")
	if !found || res == "" || act == "" {
		return "", "", false
	}
	return Resource(res), Action(act), true
}

func (p Permission) String() string {
	return string(p)
}

func manageAll(resources ...Resource) []Permission {
	perms := make([]Permission, 0, len(resources))
	for _, r := range resources {
		perms = append(perms, NewPermission(r, ActionManage))
	}
	return perms
}

// rolePermissions is the configured permission table. Every role in AllRoles has
// an entry; the table is never mutated after package initialization.
var rolePermissions = map[Role][]Permission{
	RoleOwner: manageAll(AllResources...),
	RoleAdmin: {
		"organization:read",
		"organization:update",
		"member:manage",
		"attraction:manage",
		"schedule:manage",
		"shift:manage",
		"ticket:manage",
		"checkin:manage",
		"inventory:manage",
		"payment:manage",
		"report:read",
		"settings:manage",
	},
	RoleManager: {
		"organization:read",
		"member:read",
		"attraction:read",
		"attraction:update",
		"schedule:manage",
		"shift:manage",
		"ticket:manage",
		"checkin:manage",
		"inventory:manage",
		"report:read",
	},
	RoleHR: {
		"organization:read",
		"member:create",
		"member:read",
		"member:update",
		"schedule:read",
		"shift:manage",
		"report:read",
	},
	RoleBoxOffice: {
		"organization:read",
		"attraction:read",
		"ticket:manage",
		"checkin:manage",
		"payment:create",
		"payment:read",
	},
	RoleFinance: {
		"organization:read",
		"ticket:read",
		"payment:manage",
		"report:read",
	},
	RoleActor: {
		"organization:read",
		"attraction:read",
		"schedule:read",
		"shift:read",
		"shift:update",
	},
	RoleScanner: {
		"organization:read",
		"attraction:read",
		"ticket:read",
		"ticket:update",
		"checkin:create",
		"checkin:read",
	},
}

// PermissionsFor returns a copy of the permissions configured for role.
// Unknown roles hold no permissions.
func PermissionsFor(role Role) []Permission {
	return slices.Clone(rolePermissions[role])
}

// HasPermission reports whether role holds permission, either exactly or through
// the manage action on the same resource.
func HasPermission(role Role, permission Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return permissionSetAllows(perms, permission)
}

// HasAnyPermission reports whether role holds at least one of permissions.
func HasAnyPermission(role Role, permissions []Permission) bool {
	for _, p := range permissions {
		if HasPermission(role, p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether role holds every one of permissions.
func HasAllPermissions(role Role, permissions []Permission) bool {
	for _, p := range permissions {
		if !HasPermission(role, p) {
			return false
		}
	}
	return true
}

// permissionSetAllows applies the exact-match and manage-implies-CRUD rules over an
// arbitrary permission set.
func permissionSetAllows(perms []Permission, permission Permission) bool {
	if slices.Contains(perms, permission) {
		return true
	}

	resource, action, ok := permission.Split()
	if !ok || !impliedByManage(action) {
		return false
	}
	return slices.Contains(perms, NewPermission(resource, ActionManage))
}

func impliedByManage(action Action) bool {
	switch action {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	default:
		return false
	}
}
