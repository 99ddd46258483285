package rbac

import (
	"net/http"
	"strings"
)

// PermissionLevel nivel de permiso con orden total NONE < READ < WRITE < FULL.
type PermissionLevel int

const (
	LevelNone PermissionLevel = iota
	LevelRead
	LevelWrite
	LevelFull
)

var levelNames = [...]string{"NONE", "READ", "WRITE", "FULL"}

func (l PermissionLevel) String() string {
	if l < LevelNone || l > LevelFull {
		return "NONE"
	}
	return levelNames[l]
}

// Allows indica si el nivel poseído alcanza el requerido.
func (l PermissionLevel) Allows(required PermissionLevel) bool {
	return l >= required
}

// ParsePermissionLevel interpreta "read", "WRITE"...; ok=false si no es un nivel conocido.
func ParsePermissionLevel(s string) (PermissionLevel, bool) {
	n := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range levelNames {
		if n == name {
			return PermissionLevel(i), true
		}
	}
	return LevelNone, false
}

// MarshalText serializa el nivel por nombre (JSON/YAML).
func (l PermissionLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Permission terna (rol, módulo, nivel).
type Permission struct {
	Role   Role
	Module Module
	Level  PermissionLevel
}

// MethodPolicy traduce el método HTTP al nivel requerido. Es configuración, no lógica:
// Default aplica a todos los módulos y Overrides por módulo tienen precedencia.
type MethodPolicy struct {
	Default   map[string]PermissionLevel
	Overrides map[Module]map[string]PermissionLevel
}

// DefaultMethodPolicy política por defecto: lectura para verbos seguros, escritura para
// los mutantes, y FULL para borrar usuarios o modificar permisos.
func DefaultMethodPolicy() MethodPolicy {
	return MethodPolicy{
		Default: map[string]PermissionLevel{
			http.MethodGet:     LevelRead,
			http.MethodHead:    LevelRead,
			http.MethodOptions: LevelRead,
			http.MethodPost:    LevelWrite,
			http.MethodPut:     LevelWrite,
			http.MethodPatch:   LevelWrite,
			http.MethodDelete:  LevelWrite,
		},
		Overrides: map[Module]map[string]PermissionLevel{
			ModuleUsers: {
				http.MethodDelete: LevelFull,
			},
			ModulePermissions: {
				http.MethodPost:   LevelFull,
				http.MethodPut:    LevelFull,
				http.MethodPatch:  LevelFull,
				http.MethodDelete: LevelFull,
			},
			ModuleScheduler: {
				http.MethodPost: LevelFull,
			},
		},
	}
}

// Required nivel requerido para method sobre module. Métodos desconocidos exigen FULL.
func (p MethodPolicy) Required(module Module, method string) PermissionLevel {
	method = strings.ToUpper(method)
	if byMethod, ok := p.Overrides[module]; ok {
		if lvl, ok := byMethod[method]; ok {
			return lvl
		}
	}
	if lvl, ok := p.Default[method]; ok {
		return lvl
	}
	return LevelFull
}
