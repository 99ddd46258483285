package rbac_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
)

func TestParseRoleName(t *testing.T) {
	cases := []struct {
		in   string
		want rbac.Role
	}{
		{"MANAGER", rbac.RoleManager},
		{"manager", rbac.RoleManager},
		{"  cashier ", rbac.RoleCashier},
		{"Housekeeping Staff", rbac.RoleHousekeepingStaff},
		{"housekeeping-staff", rbac.RoleHousekeepingStaff},
		{"HOUSEKEEPING", rbac.RoleHousekeepingStaff},
		{"Administrator", rbac.RoleAdmin},
		{"ADM", rbac.RoleAdmin},
		{"front desk", rbac.RoleReceptionist},
	}
	for _, tc := range cases {
		got, ok := rbac.ParseRoleName(tc.in)
		assert.True(t, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "   ", "GUEST", "chef"} {
		got, ok := rbac.ParseRoleName(bad)
		assert.False(t, ok, bad)
		assert.Equal(t, rbac.RoleUnknown, got)
	}
}

func TestParseRoleCode_Exacto(t *testing.T) {
	r, ok := rbac.ParseRoleCode("HKS")
	assert.True(t, ok)
	assert.Equal(t, rbac.RoleHousekeepingStaff, r)

	_, ok = rbac.ParseRoleCode("hks")
	assert.False(t, ok, "el código se compara exacto")
	_, ok = rbac.ParseRoleCode("")
	assert.False(t, ok)
}

func TestRole_Metadatos(t *testing.T) {
	assert.Equal(t, "CASHIER", rbac.RoleCashier.Name())
	assert.Equal(t, "CSH", rbac.RoleCashier.Code())
	assert.Equal(t, "Cashier", rbac.RoleCashier.DisplayName())
	assert.Equal(t, "UNKNOWN", rbac.RoleUnknown.String())
	assert.False(t, rbac.RoleUnknown.IsKnown())
	assert.Len(t, rbac.AllRoles(), 5)
}

func TestModuleFromPath(t *testing.T) {
	cases := []struct {
		path string
		want rbac.Module
		ok   bool
	}{
		{"/api/bills", rbac.ModuleBills, true},
		{"/api/bills/123/payments", rbac.ModuleBills, true},
		{"/api/v1/reservations/9", rbac.ModuleReservations, true},
		{"/api/check-ins/4/checkout", rbac.ModuleCheckIns, true},
		{"/api/housekeeping/tasks", rbac.ModuleHousekeeping, true},
		{"/api/spa/bookings", rbac.ModuleUnknown, false},
		{"/api", rbac.ModuleUnknown, false},
		{"/api/", rbac.ModuleUnknown, false},
		{"/api/v1", rbac.ModuleUnknown, false},
		{"/apiary/bills", rbac.ModuleUnknown, false},
		{"/other/bills", rbac.ModuleUnknown, false},
	}
	for _, tc := range cases {
		got, ok := rbac.ModuleFromPath("/api", tc.path)
		assert.Equal(t, tc.ok, ok, tc.path)
		assert.Equal(t, tc.want, got, tc.path)
	}
}

func TestParseModule(t *testing.T) {
	m, ok := rbac.ParseModule("CHECK_INS")
	assert.True(t, ok)
	assert.Equal(t, rbac.ModuleCheckIns, m)

	m, ok = rbac.ParseModule("check-ins")
	assert.True(t, ok)
	assert.Equal(t, rbac.ModuleCheckIns, m)

	_, ok = rbac.ParseModule("laundry")
	assert.False(t, ok)
}

func TestPermissionLevel_OrdenTotal(t *testing.T) {
	levels := []rbac.PermissionLevel{rbac.LevelNone, rbac.LevelRead, rbac.LevelWrite, rbac.LevelFull}
	for i, held := range levels {
		for j, required := range levels {
			assert.Equal(t, i >= j, held.Allows(required), "%s vs %s", held, required)
		}
	}

	l, ok := rbac.ParsePermissionLevel("write")
	assert.True(t, ok)
	assert.Equal(t, rbac.LevelWrite, l)
	_, ok = rbac.ParsePermissionLevel("ADMIN")
	assert.False(t, ok)
}

func TestDefaultMethodPolicy(t *testing.T) {
	p := rbac.DefaultMethodPolicy()
	assert.Equal(t, rbac.LevelRead, p.Required(rbac.ModuleBills, http.MethodGet))
	assert.Equal(t, rbac.LevelWrite, p.Required(rbac.ModuleBills, "post"))
	assert.Equal(t, rbac.LevelWrite, p.Required(rbac.ModuleBills, http.MethodDelete))
	assert.Equal(t, rbac.LevelFull, p.Required(rbac.ModuleUsers, http.MethodDelete))
	assert.Equal(t, rbac.LevelRead, p.Required(rbac.ModuleUsers, http.MethodGet))
	assert.Equal(t, rbac.LevelFull, p.Required(rbac.ModulePermissions, http.MethodPut))
	assert.Equal(t, rbac.LevelFull, p.Required(rbac.ModuleBills, "TRACE"), "método desconocido exige FULL")
}
