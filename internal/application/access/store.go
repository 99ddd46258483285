// Package access implementa el almacén de plantillas de permisos, la resolución de
// roles a partir de los claims del token y el verificador de permisos usado dentro de
// los casos de uso.
package access

import (
	"sort"
	"sync"

	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
)

// Store plantillas (rol, módulo) → nivel. Lectura concurrente; escritura solo durante
// la configuración inicial.
type Store struct {
	mu        sync.RWMutex
	apiPrefix string
	policy    rbac.MethodPolicy
	levels    map[rbac.Role]map[rbac.Module]rbac.PermissionLevel
}

// NewStore crea el almacén con las plantillas por defecto.
func NewStore(apiPrefix string, policy rbac.MethodPolicy) *Store {
	s := &Store{
		apiPrefix: apiPrefix,
		policy:    policy,
		levels:    make(map[rbac.Role]map[rbac.Module]rbac.PermissionLevel),
	}
	for _, role := range rbac.AllRoles() {
		for _, p := range DefaultPermissions(role) {
			s.setLocked(p)
		}
	}
	return s
}

// APIPrefix prefijo usado para extraer el módulo.
func (s *Store) APIPrefix() string { return s.apiPrefix }

// Set fija un permiso (uso en configuración). Ignora roles o módulos desconocidos.
func (s *Store) Set(p rbac.Permission) {
	if !p.Role.IsKnown() || !p.Module.IsKnown() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(p)
}

// SetPolicy reemplaza la política método → nivel.
func (s *Store) SetPolicy(policy rbac.MethodPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = policy
}

func (s *Store) setLocked(p rbac.Permission) {
	byModule, ok := s.levels[p.Role]
	if !ok {
		byModule = make(map[rbac.Module]rbac.PermissionLevel)
		s.levels[p.Role] = byModule
	}
	byModule[p.Module] = p.Level
}

// Level nivel que tiene role sobre module (NONE si no hay fila).
func (s *Store) Level(role rbac.Role, module rbac.Module) rbac.PermissionLevel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.levels[role][module]
}

// Required nivel requerido por method sobre module según la política vigente.
func (s *Store) Required(module rbac.Module, method string) rbac.PermissionLevel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy.Required(module, method)
}

// HasModuleAccess informa si role alcanza required sobre module.
func (s *Store) HasModuleAccess(role rbac.Role, module rbac.Module, required rbac.PermissionLevel) bool {
	if !role.IsKnown() || !module.IsKnown() {
		return false
	}
	return s.Level(role, module).Allows(required)
}

// HasEndpointAccess decide el acceso de role a (path, method).
// Si la ruta no corresponde a un módulo conocido solo ADMIN pasa.
func (s *Store) HasEndpointAccess(role rbac.Role, path, method string) bool {
	if !role.IsKnown() {
		return false
	}
	module, ok := rbac.ModuleFromPath(s.apiPrefix, path)
	if !ok {
		return role == rbac.RoleAdmin
	}
	return s.HasModuleAccess(role, module, s.Required(module, method))
}

// Permissions permisos vigentes de role (solo niveles > NONE), ordenados por módulo.
func (s *Store) Permissions(role rbac.Role) []rbac.Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]rbac.Permission, 0, len(s.levels[role]))
	for m, l := range s.levels[role] {
		if l > rbac.LevelNone {
			out = append(out, rbac.Permission{Role: role, Module: m, Level: l})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Module < out[j].Module })
	return out
}

// DefaultPermissions plantilla incorporada de role. Los módulos ausentes valen NONE.
func DefaultPermissions(role rbac.Role) []rbac.Permission {
	var levels map[rbac.Module]rbac.PermissionLevel
	switch role {
	case rbac.RoleAdmin:
		levels = make(map[rbac.Module]rbac.PermissionLevel)
		for _, m := range rbac.AllModules() {
			levels[m] = rbac.LevelFull
		}
	case rbac.RoleManager:
		levels = map[rbac.Module]rbac.PermissionLevel{
			rbac.ModuleReservations: rbac.LevelFull,
			rbac.ModuleCheckIns:     rbac.LevelFull,
			rbac.ModuleBills:        rbac.LevelFull,
			rbac.ModuleAdvances:     rbac.LevelFull,
			rbac.ModuleHousekeeping: rbac.LevelFull,
			rbac.ModuleRooms:        rbac.LevelFull,
			rbac.ModuleGuests:       rbac.LevelFull,
			rbac.ModuleReports:      rbac.LevelFull,
			rbac.ModuleUsers:        rbac.LevelRead,
			rbac.ModulePermissions:  rbac.LevelRead,
		}
	case rbac.RoleCashier:
		levels = map[rbac.Module]rbac.PermissionLevel{
			rbac.ModuleReservations: rbac.LevelRead,
			rbac.ModuleCheckIns:     rbac.LevelRead,
			rbac.ModuleBills:        rbac.LevelWrite,
			rbac.ModuleAdvances:     rbac.LevelWrite,
			rbac.ModuleRooms:        rbac.LevelRead,
			rbac.ModuleGuests:       rbac.LevelRead,
			rbac.ModuleReports:      rbac.LevelRead,
			rbac.ModulePermissions:  rbac.LevelRead,
		}
	case rbac.RoleReceptionist:
		levels = map[rbac.Module]rbac.PermissionLevel{
			rbac.ModuleReservations: rbac.LevelWrite,
			rbac.ModuleCheckIns:     rbac.LevelWrite,
			rbac.ModuleBills:        rbac.LevelRead,
			rbac.ModuleAdvances:     rbac.LevelWrite,
			rbac.ModuleHousekeeping: rbac.LevelRead,
			rbac.ModuleRooms:        rbac.LevelRead,
			rbac.ModuleGuests:       rbac.LevelWrite,
			rbac.ModulePermissions:  rbac.LevelRead,
		}
	case rbac.RoleHousekeepingStaff:
		levels = map[rbac.Module]rbac.PermissionLevel{
			rbac.ModuleHousekeeping: rbac.LevelWrite,
			rbac.ModuleRooms:        rbac.LevelRead,
			rbac.ModulePermissions:  rbac.LevelRead,
		}
	default:
		return nil
	}

	out := make([]rbac.Permission, 0, len(levels))
	for m, l := range levels {
		out = append(out, rbac.Permission{Role: role, Module: m, Level: l})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Module < out[j].Module })
	return out
}
