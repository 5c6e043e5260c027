package auth

import (
	"github.com/iliyamo/inventory-service/internal/model"
	"github.com/iliyamo/inventory-service/internal/utils"
)

// Policy decides whether decoded claims may perform a guarded action.
// A policy is a set of role ids; an exact-role policy is a set of one.
type Policy struct {
	roles map[int64]struct{}
}

// Exact allows only callers whose role id equals roleID.
func Exact(roleID int64) Policy {
	return AnyOf(roleID)
}

// AnyOf allows callers whose role id is one of roleIDs. An empty set
// allows nobody.
func AnyOf(roleIDs ...int64) Policy {
	roles := make(map[int64]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		roles[id] = struct{}{}
	}
	return Policy{roles: roles}
}

// EmployeeOrMaster is the membership policy guarding inventory reads.
var EmployeeOrMaster = AnyOf(model.RoleEmployee, model.RoleMaster)

// MasterOrAdmin guards user registration.
var MasterOrAdmin = AnyOf(model.RoleMaster, model.RoleAdmin)

// Allows reports whether claims satisfy the policy. Nil claims never do.
func (p Policy) Allows(claims *utils.Claims) bool {
	if claims == nil {
		return false
	}
	_, ok := p.roles[claims.RoleID]
	return ok
}
