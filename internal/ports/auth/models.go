package auth

// Role del usuario en el marketplace.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleWalker Role = "walker"
	RoleAdmin  Role = "admin"
)

// Claims es lo que el BFF sabe del usuario del request. La autenticación real
// la hace el backend: el token se reenvía tal cual.
type Claims struct {
	UserID string
	Role   Role
	Name   string
	Token  string
}

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleOwner, RoleWalker, RoleAdmin:
		return Role(s)
	default:
		return ""
	}
}
