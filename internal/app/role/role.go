package role

// Role is the access level stored in the user row and the JWT claims.
type Role int

const (
	Viewer Role = iota
	Manager
	Admin
)

func (r Role) String() string {
	switch r {
	case Manager:
		return "manager"
	case Admin:
		return "admin"
	default:
		return "viewer"
	}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r >= Viewer && r <= Admin
}
