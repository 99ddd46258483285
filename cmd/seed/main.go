// seed genera el script SQL con los datos iniciales del hotel (usuarios de staff y
// habitaciones) a partir de un archivo YAML.
//
// Uso: go run ./cmd/seed [ruta/seed.yaml]
// Por defecto busca seed.yaml en el directorio actual.
// Escribe: migrations/0002_seed.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/hotel-pms-api/internal/application/auth"
	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
)

type seedFile struct {
	Users []seedUser `yaml:"users"`
	Rooms []seedRoom `yaml:"rooms"`
}

type seedUser struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	FullName string `yaml:"full_name"`
	Role     string `yaml:"role"`
}

type seedRoom struct {
	Number   string `yaml:"number"`
	TypeCode string `yaml:"type"`
	Floor    int    `yaml:"floor"`
}

func main() {
	seedPath := "seed.yaml"
	if len(os.Args) > 1 {
		seedPath = os.Args[1]
	}
	raw, err := os.ReadFile(seedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer seed: %v\n", err)
		os.Exit(1)
	}
	var s seedFile
	if err := yaml.Unmarshal(raw, &s); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar YAML: %v\n", err)
		os.Exit(1)
	}

	sql, err := render(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar SQL: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "migrations", "0002_seed.sql")
	if err := os.WriteFile(outPath, []byte(sql), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d usuarios, %d habitaciones\n", outPath, len(s.Users), len(s.Rooms))
}

// render arma el script; usuarios primero, habitaciones ordenadas por número.
func render(s seedFile) (string, error) {
	var b strings.Builder
	b.WriteString("-- Datos iniciales del hotel\n")
	b.WriteString("-- Generado por cmd/seed\n\n")

	if len(s.Users) > 0 {
		b.WriteString("-- 1. Usuarios\n")
		for _, u := range s.Users {
			role, ok := rbac.ParseRoleName(u.Role)
			if !ok {
				return "", fmt.Errorf("usuario %q: rol desconocido %q", u.Username, u.Role)
			}
			if strings.TrimSpace(u.Username) == "" || u.Password == "" {
				return "", fmt.Errorf("usuario sin username o password")
			}
			hash, err := auth.HashPassword(u.Password)
			if err != nil {
				return "", fmt.Errorf("hash de %q: %w", u.Username, err)
			}
			fmt.Fprintf(&b, "INSERT INTO users (id, username, email, password_hash, full_name, user_type_id, user_type_role, status, created_at, updated_at)\n")
			fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', '%s', 'active', now(), now())\n",
				uuid.New(), escapeSQL(u.Username), escapeSQL(u.Email), hash, escapeSQL(u.FullName),
				role.Code(), escapeSQL(role.DisplayName()))
			b.WriteString("ON CONFLICT DO NOTHING;\n")
		}
		b.WriteString("\n")
	}

	if len(s.Rooms) > 0 {
		rooms := append([]seedRoom(nil), s.Rooms...)
		sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })

		b.WriteString("-- 2. Habitaciones\n")
		b.WriteString("INSERT INTO rooms (id, number, type_code, floor, status, updated_at) VALUES\n")
		for i, r := range rooms {
			if strings.TrimSpace(r.Number) == "" {
				return "", fmt.Errorf("habitación sin número")
			}
			floor := r.Floor
			if floor == 0 {
				floor = 1
			}
			sep := ","
			if i == len(rooms)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', %d, 'AVAILABLE', now())%s\n",
				uuid.New(), escapeSQL(r.Number), escapeSQL(r.TypeCode), floor, sep)
		}
		b.WriteString("ON CONFLICT (number) DO UPDATE SET type_code = EXCLUDED.type_code, floor = EXCLUDED.floor;\n")
	}
	return b.String(), nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
