package access

import (
	"testing"

	"github.com/vendorsync/procurement-console/internal/core/domain"
)

func TestCapabilitiesFor_Manager(t *testing.T) {
	caps := CapabilitiesFor(domain.RoleManager)

	for _, c := range []Capability{CapSearch, CapViewDashboard, CapCreateOrder, CapManageOrders, CapManageVendors, CapManageUsers} {
		if !caps.Has(c) {
			t.Fatalf("manager missing %s", c)
		}
	}
	if caps.Has(CapSubmitQuote) {
		t.Fatalf("manager must not submit quotes")
	}
	if caps.Has(CapUpdateOrderStatus) {
		t.Fatalf("manager must not hold staff-only capability")
	}
}

func TestCapabilitiesFor_Staff(t *testing.T) {
	caps := CapabilitiesFor(domain.RoleStaff)

	if !caps.Has(CapUpdateOrderStatus) || !caps.Has(CapViewOrders) {
		t.Fatalf("staff missing order capabilities: %v", caps)
	}
	if caps.Has(CapCreateOrder) || caps.Has(CapSubmitQuote) {
		t.Fatalf("staff holds capabilities outside its role")
	}
}

func TestCapabilitiesFor_Vendor(t *testing.T) {
	caps := CapabilitiesFor(domain.RoleVendor)

	if !caps.Has(CapSubmitQuote) || !caps.Has(CapViewRequirements) {
		t.Fatalf("vendor missing quote capabilities: %v", caps)
	}
	if caps.Has(CapCreateOrder) || caps.Has(CapManageUsers) {
		t.Fatalf("vendor holds manager capabilities")
	}
}

func TestCapabilitiesFor_Baseline(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleManager, domain.RoleStaff, domain.RoleVendor} {
		caps := CapabilitiesFor(role)
		if !caps.Has(CapSearch) || !caps.Has(CapViewDashboard) {
			t.Fatalf("role %s missing baseline capabilities", role)
		}
	}
}

func TestCapabilitiesFor_UnknownRoleFailsClosed(t *testing.T) {
	for _, role := range []domain.Role{"", "admin", "superuser", "MANAGER"} {
		caps := CapabilitiesFor(role)
		if len(caps) != 0 {
			t.Fatalf("expected empty set for role %q, got %v", role, caps)
		}
	}
}

func TestCapabilitiesFor_Deterministic(t *testing.T) {
	first := CapabilitiesFor(domain.RoleVendor)
	second := CapabilitiesFor(domain.RoleVendor)

	if len(first) != len(second) {
		t.Fatalf("set size changed between calls: %d vs %d", len(first), len(second))
	}
	for c := range first {
		if !second.Has(c) {
			t.Fatalf("capability %s missing on second call", c)
		}
	}
}
