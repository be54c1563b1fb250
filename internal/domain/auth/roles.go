package auth

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

var AllRoles = []string{RoleAdmin, RoleHR, RoleManager, RoleEmployee}

// UserContext is the authenticated caller, carried on the request context.
type UserContext struct {
	UserID string
	Email  string
	Role   string
}

func ValidRole(role string) bool {
	for _, candidate := range AllRoles {
		if role == candidate {
			return true
		}
	}
	return false
}
