package domain

// Role is the closed set of principal categories known to the procurement
// platform. It is assigned by the backend at registration or login time and
// never changes client-side except through a fresh login.
type Role string

const (
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
	RoleVendor  Role = "vendor"
)

// Known reports whether r is one of the closed role set. Anything else
// (including "admin", which one backend variant hands out) is treated as
// unknown and maps to zero capabilities downstream.
func (r Role) Known() bool {
	switch r {
	case RoleManager, RoleStaff, RoleVendor:
		return true
	}
	return false
}

// Identity is the authenticated principal: bearer token, role, and profile.
// It is either wholly present or wholly absent; consumers never see a
// partially populated identity.
type Identity struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

// Complete reports whether the identity satisfies the wholly-present
// invariant: token and role must both be set. Profile attributes may be
// empty strings without breaking the invariant.
func (i *Identity) Complete() bool {
	return i != nil && i.Token != "" && i.Role != ""
}
