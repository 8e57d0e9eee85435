package domain

import "testing"

func TestPermissionsForPetugas(t *testing.T) {
	p := PermissionsFor(RolePetugas)
	if !p.CanCreate || !p.CanUpdate || !p.CanDelete || !p.CanView {
		t.Fatalf("petugas should hold every permission, got %+v", p)
	}
}

func TestPermissionsForViewer(t *testing.T) {
	p := PermissionsFor(RoleViewer)
	if p.CanCreate || p.CanUpdate || p.CanDelete {
		t.Fatalf("viewer must not mutate, got %+v", p)
	}
	if !p.CanView {
		t.Fatalf("viewer should be able to view")
	}
}

func TestPermissionsFailClosed(t *testing.T) {
	for _, role := range []string{"", "admin", "Petugas", "superuser"} {
		p := PermissionsFor(role)
		if p.CanCreate || p.CanUpdate || p.CanDelete || p.CanView {
			t.Fatalf("role %q should get no permissions, got %+v", role, p)
		}
	}
}
