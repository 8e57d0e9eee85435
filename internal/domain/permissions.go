package domain

// Permissions is the full set of operations a role may perform. There is
// no per-record ACL: the policy is a function of the role alone.
type Permissions struct {
	CanCreate bool
	CanUpdate bool
	CanDelete bool
	CanView   bool
}

// PermissionsFor maps a role to its permissions. Unrecognized roles get
// nothing: authorization fails closed.
func PermissionsFor(role string) Permissions {
	switch role {
	case RolePetugas:
		return Permissions{CanCreate: true, CanUpdate: true, CanDelete: true, CanView: true}
	case RoleViewer:
		return Permissions{CanView: true}
	default:
		return Permissions{}
	}
}
