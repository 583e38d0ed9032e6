package shared

// Role of the authenticated caller. Verification happens upstream of this
// service; the role is trusted input to every core operation.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleOwner    Role = "OWNER"
	RoleShipper  Role = "SHIPPER"
)

// ParseRole returns the Role for a raw header value, false when unknown.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleCustomer, RoleOwner, RoleShipper:
		return Role(raw), true
	}
	return "", false
}

// Actor is the authenticated caller, passed explicitly into every
// application-service operation so permission checks are pure functions
// of their inputs.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsCustomer() bool { return a.Role == RoleCustomer }
func (a Actor) IsOwner() bool    { return a.Role == RoleOwner }
func (a Actor) IsShipper() bool  { return a.Role == RoleShipper }
