package authz

type Role string

const (
	RoleSales   Role = "SALES"
	RoleManager Role = "MANAGER"
)

// CanApproveDeals gates the approve/reject actions in the UI. The backend
// enforces the same rule; this only decides what to offer.
func CanApproveDeals(role Role) bool {
	return role == RoleManager
}

func IsKnown(role Role) bool {
	return role == RoleSales || role == RoleManager
}
