// Package rbac define los tipos cerrados del control de acceso: roles del personal,
// módulos funcionales de la API y niveles de permiso.
//
// Todos los parsers son totales: devuelven (valor, ok) y nunca entran en pánico.
package rbac

import "strings"

// Role rol del personal del hotel.
type Role int

const (
	RoleUnknown Role = iota
	RoleManager
	RoleCashier
	RoleReceptionist
	RoleAdmin
	RoleHousekeepingStaff
)

type roleInfo struct {
	name    string // nombre canónico (enum)
	display string // nombre visible
	code    string // código en el token (user_type_id)
}

var roles = map[Role]roleInfo{
	RoleManager:           {name: "MANAGER", display: "Manager", code: "MGR"},
	RoleCashier:           {name: "CASHIER", display: "Cashier", code: "CSH"},
	RoleReceptionist:      {name: "RECEPTIONIST", display: "Receptionist", code: "RCP"},
	RoleAdmin:             {name: "ADMIN", display: "Administrator", code: "ADM"},
	RoleHousekeepingStaff: {name: "HOUSEKEEPING_STAFF", display: "Housekeeping Staff", code: "HKS"},
}

// Alias conocidos (ya normalizados) → rol.
var roleAliases = map[string]Role{
	"HOUSEKEEPING":    RoleHousekeepingStaff,
	"HOUSEKEEPER":     RoleHousekeepingStaff,
	"HK":              RoleHousekeepingStaff,
	"ADMINISTRATOR":   RoleAdmin,
	"SUPERADMIN":      RoleAdmin,
	"FRONT_DESK":      RoleReceptionist,
	"RECEPTION":       RoleReceptionist,
	"GENERAL_MANAGER": RoleManager,
	"CASHIER_STAFF":   RoleCashier,
}

// AllRoles roles conocidos en orden estable.
func AllRoles() []Role {
	return []Role{RoleManager, RoleCashier, RoleReceptionist, RoleAdmin, RoleHousekeepingStaff}
}

// Name nombre canónico ("MANAGER"...); vacío si es desconocido.
func (r Role) Name() string { return roles[r].name }

// DisplayName nombre visible.
func (r Role) DisplayName() string { return roles[r].display }

// Code código de tipo de usuario usado en los tokens.
func (r Role) Code() string { return roles[r].code }

func (r Role) String() string {
	if n := r.Name(); n != "" {
		return n
	}
	return "UNKNOWN"
}

// IsKnown indica si el rol pertenece al conjunto enumerado.
func (r Role) IsKnown() bool {
	_, ok := roles[r]
	return ok
}

// NormalizeRoleName recorta, pasa a mayúsculas y reemplaza espacios y guiones por "_".
func NormalizeRoleName(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

// ParseRoleName busca un rol por nombre canónico, código, nombre visible o alias.
// La entrada se normaliza antes de comparar.
func ParseRoleName(s string) (Role, bool) {
	n := NormalizeRoleName(s)
	if n == "" {
		return RoleUnknown, false
	}
	for _, r := range AllRoles() {
		info := roles[r]
		if n == info.name || n == info.code || n == NormalizeRoleName(info.display) {
			return r, true
		}
	}
	if r, ok := roleAliases[n]; ok {
		return r, true
	}
	return RoleUnknown, false
}

// ParseRoleCode busca un rol por código exacto (sin normalizar).
func ParseRoleCode(code string) (Role, bool) {
	if code == "" {
		return RoleUnknown, false
	}
	for _, r := range AllRoles() {
		if roles[r].code == code {
			return r, true
		}
	}
	return RoleUnknown, false
}
