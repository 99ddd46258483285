package rbac

import "strings"

// Module área funcional de la API; unidad de granularidad del control de acceso.
type Module int

const (
	ModuleUnknown Module = iota
	ModuleReservations
	ModuleCheckIns
	ModuleBills
	ModuleAdvances
	ModuleHousekeeping
	ModuleRooms
	ModuleGuests
	ModuleUsers
	ModuleReports
	ModulePermissions
	ModuleScheduler
)

type moduleInfo struct {
	name    string // nombre canónico
	segment string // primer segmento de ruta tras el prefijo de la API
}

var modules = map[Module]moduleInfo{
	ModuleReservations: {name: "RESERVATIONS", segment: "reservations"},
	ModuleCheckIns:     {name: "CHECK_INS", segment: "check-ins"},
	ModuleBills:        {name: "BILLS", segment: "bills"},
	ModuleAdvances:     {name: "ADVANCES", segment: "advances"},
	ModuleHousekeeping: {name: "HOUSEKEEPING", segment: "housekeeping"},
	ModuleRooms:        {name: "ROOMS", segment: "rooms"},
	ModuleGuests:       {name: "GUESTS", segment: "guests"},
	ModuleUsers:        {name: "USERS", segment: "users"},
	ModuleReports:      {name: "REPORTS", segment: "reports"},
	ModulePermissions:  {name: "PERMISSIONS", segment: "permissions"},
	ModuleScheduler:    {name: "SCHEDULER", segment: "scheduler"},
}

// AllModules módulos conocidos en orden estable.
func AllModules() []Module {
	return []Module{
		ModuleReservations, ModuleCheckIns, ModuleBills, ModuleAdvances, ModuleHousekeeping,
		ModuleRooms, ModuleGuests, ModuleUsers, ModuleReports, ModulePermissions, ModuleScheduler,
	}
}

// Name nombre canónico ("BILLS"...).
func (m Module) Name() string { return modules[m].name }

// Segment segmento de ruta del módulo ("bills"...).
func (m Module) Segment() string { return modules[m].segment }

func (m Module) String() string {
	if n := m.Name(); n != "" {
		return n
	}
	return "UNKNOWN"
}

// IsKnown indica si el módulo pertenece al conjunto enumerado.
func (m Module) IsKnown() bool {
	_, ok := modules[m]
	return ok
}

// ParseModule acepta el nombre canónico o el segmento de ruta, sin distinguir mayúsculas.
func ParseModule(s string) (Module, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ModuleUnknown, false
	}
	upper := strings.ToUpper(strings.ReplaceAll(s, "-", "_"))
	lower := strings.ToLower(s)
	for _, m := range AllModules() {
		info := modules[m]
		if upper == info.name || lower == info.segment {
			return m, true
		}
	}
	return ModuleUnknown, false
}

// ModuleFromPath extrae el módulo del primer segmento tras apiPrefix ("/api").
// Un segmento de versión ("v1", "v2"...) inmediatamente después del prefijo se omite.
// ok=false si la ruta no está bajo el prefijo o el segmento no es un módulo conocido.
func ModuleFromPath(apiPrefix, path string) (Module, bool) {
	prefix := "/" + strings.Trim(apiPrefix, "/")
	if prefix == "/" {
		prefix = ""
	}
	if prefix != "" {
		if path != prefix && !strings.HasPrefix(path, prefix+"/") {
			return ModuleUnknown, false
		}
		path = strings.TrimPrefix(path, prefix)
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) > 1 && isVersionSegment(segments[0]) {
		segments = segments[1:]
	}
	if len(segments) == 0 || segments[0] == "" {
		return ModuleUnknown, false
	}
	return ParseModule(segments[0])
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || (s[0] != 'v' && s[0] != 'V') {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
