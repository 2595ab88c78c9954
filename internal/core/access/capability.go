package access

import "github.com/vendorsync/procurement-console/internal/core/domain"

// Capability is an opaque permission token gating a single view or action.
type Capability string

const (
	// Baseline capabilities shared by every authenticated role.
	CapSearch        Capability = "can-search"
	CapViewDashboard Capability = "can-view-own-dashboard"

	// Manager capabilities.
	CapCreateOrder        Capability = "can-create-order"
	CapManageOrders       Capability = "can-manage-orders"
	CapManageRequirements Capability = "can-manage-requirements"
	CapManageVendors      Capability = "can-manage-vendors"
	CapManageUsers        Capability = "can-manage-users"

	// Staff capabilities.
	CapUpdateOrderStatus Capability = "can-update-order-status"

	// Vendor capabilities.
	CapSubmitQuote      Capability = "can-submit-quote"
	CapViewRequirements Capability = "can-view-requirements"

	// Shared by manager and staff.
	CapViewOrders Capability = "can-view-orders"
)

// CapNone marks a public view that requires no capability at all.
const CapNone Capability = ""

// Set is a capability set derived from a role.
type Set map[Capability]struct{}

// Has reports membership. The zero (nil) Set has nothing.
func (s Set) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

func newSet(caps ...Capability) Set {
	s := make(Set, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

// CapabilitiesFor maps a role to the set of capabilities it may exercise.
// It is total and deterministic: an unrecognised role yields the empty set,
// never a crash and never the most-privileged set. Results are built fresh
// on every call; role only changes through a new login, so callers are free
// to cache per-session, but nothing here does.
func CapabilitiesFor(role domain.Role) Set {
	switch role {
	case domain.RoleManager:
		return newSet(
			CapSearch, CapViewDashboard,
			CapViewOrders, CapCreateOrder, CapManageOrders,
			CapManageRequirements, CapViewRequirements,
			CapManageVendors, CapManageUsers,
		)
	case domain.RoleStaff:
		return newSet(
			CapSearch, CapViewDashboard,
			CapViewOrders, CapUpdateOrderStatus,
		)
	case domain.RoleVendor:
		return newSet(
			CapSearch, CapViewDashboard,
			CapViewRequirements, CapSubmitQuote,
		)
	}
	return Set{}
}
