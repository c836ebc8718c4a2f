package models

// Role defines the user role type
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleFormateur Role = "formateur"
	RoleParent    Role = "parent"
)

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFormateur, RoleParent:
		return true
	}
	return false
}
