package auth

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

// Elevated reports whether the role may read or mutate records beyond its own.
func Elevated(role string) bool {
	return role == RoleAdmin
}
