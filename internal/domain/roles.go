package domain

// Roles are fixed for the whole system. Admin inherits manager, manager
// inherits employee (see internal/rbac).
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}

// IsPrivileged reports whether the role may see records beyond its own.
func IsPrivileged(role string) bool {
	return role == RoleAdmin || role == RoleManager
}

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
