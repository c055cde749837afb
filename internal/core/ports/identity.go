package ports

// Identity supplies the acting user's identity and role. The courier
// workflows are gated on the courier and admin roles; the username is what a
// successful claim records as the assigned courier.
type Identity interface {
	Username() string
	Role() string
}

// Roles permitted to operate the courier workflows.
const (
	RoleCourier = "courier"
	RoleAdmin   = "admin"
)

// CanOperateCourierWorkflows reports whether the identity's role grants
// access to claim, status, eta, and location operations.
func CanOperateCourierWorkflows(id Identity) bool {
	if id == nil {
		return false
	}
	role := id.Role()
	return role == RoleCourier || role == RoleAdmin
}
