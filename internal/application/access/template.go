package access

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
)

// templateFile formato YAML de la plantilla de permisos:
//
//	method_policy:
//	  default: {GET: READ, POST: WRITE, DELETE: FULL}
//	  overrides:
//	    users: {DELETE: FULL}
//	roles:
//	  CASHIER:
//	    bills: WRITE
//	    reports: NONE
type templateFile struct {
	MethodPolicy *struct {
		Default   map[string]string            `yaml:"default"`
		Overrides map[string]map[string]string `yaml:"overrides"`
	} `yaml:"method_policy"`
	Roles map[string]map[string]string `yaml:"roles"`
}

// LoadTemplateFile aplica sobre store la plantilla YAML de path.
func LoadTemplateFile(store *Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("rbac: abrir plantilla: %w", err)
	}
	defer f.Close()
	return LoadTemplate(store, f)
}

// LoadTemplate aplica una plantilla YAML. Los roles y módulos no listados conservan
// sus valores por defecto; cualquier nombre desconocido es un error.
func LoadTemplate(store *Store, r io.Reader) error {
	var tf templateFile
	if err := yaml.NewDecoder(r).Decode(&tf); err != nil && err != io.EOF {
		return fmt.Errorf("rbac: decodificar plantilla: %w", err)
	}

	var perms []rbac.Permission
	for roleName, byModule := range tf.Roles {
		role, ok := rbac.ParseRoleName(roleName)
		if !ok {
			return fmt.Errorf("rbac: rol desconocido %q", roleName)
		}
		for moduleName, levelName := range byModule {
			module, ok := rbac.ParseModule(moduleName)
			if !ok {
				return fmt.Errorf("rbac: módulo desconocido %q (rol %s)", moduleName, role)
			}
			level, ok := rbac.ParsePermissionLevel(levelName)
			if !ok {
				return fmt.Errorf("rbac: nivel desconocido %q (rol %s, módulo %s)", levelName, role, module)
			}
			perms = append(perms, rbac.Permission{Role: role, Module: module, Level: level})
		}
	}

	var policy *rbac.MethodPolicy
	if tf.MethodPolicy != nil {
		p := rbac.DefaultMethodPolicy()
		if len(tf.MethodPolicy.Default) > 0 {
			def, err := parseMethodLevels(tf.MethodPolicy.Default)
			if err != nil {
				return err
			}
			p.Default = def
		}
		for moduleName, byMethod := range tf.MethodPolicy.Overrides {
			module, ok := rbac.ParseModule(moduleName)
			if !ok {
				return fmt.Errorf("rbac: módulo desconocido %q en method_policy", moduleName)
			}
			levels, err := parseMethodLevels(byMethod)
			if err != nil {
				return err
			}
			p.Overrides[module] = levels
		}
		policy = &p
	}

	// Solo se modifica el store si toda la plantilla es válida.
	for _, p := range perms {
		store.Set(p)
	}
	if policy != nil {
		store.SetPolicy(*policy)
	}
	return nil
}

func parseMethodLevels(in map[string]string) (map[string]rbac.PermissionLevel, error) {
	out := make(map[string]rbac.PermissionLevel, len(in))
	for method, levelName := range in {
		level, ok := rbac.ParsePermissionLevel(levelName)
		if !ok {
			return nil, fmt.Errorf("rbac: nivel desconocido %q para %s", levelName, method)
		}
		out[strings.ToUpper(method)] = level
	}
	return out, nil
}
