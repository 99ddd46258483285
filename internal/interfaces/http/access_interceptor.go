package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-pms-api/internal/application/access"
	"github.com/jhoicas/hotel-pms-api/internal/application/auth"
	"github.com/jhoicas/hotel-pms-api/pkg/jwt"
	"github.com/jhoicas/hotel-pms-api/pkg/logger"
	"github.com/jhoicas/hotel-pms-api/pkg/metrics"
)

// LocalPrincipal clave de c.Locals con el *access.Principal de la petición.
const LocalPrincipal = "principal"

// DefaultPublicPaths rutas que no pasan por autenticación (coincidencia exacta o por prefijo).
var DefaultPublicPaths = PublicPaths("/api")

// PublicPaths rutas públicas para un prefijo de API dado.
func PublicPaths(apiPrefix string) []string {
	apiPrefix = strings.TrimSuffix(apiPrefix, "/")
	return []string{
		apiPrefix + "/auth/login",
		apiPrefix + "/auth/logout",
		"/docs",
		"/swagger",
		"/health",
		"/actuator",
		"/metrics",
	}
}

// tokenParser contrato mínimo del servicio JWT que usa el interceptor.
type tokenParser interface {
	Parse(token string) (*jwt.Claims, error)
}

// AccessConfig dependencias del interceptor. Metrics y Logger son opcionales.
type AccessConfig struct {
	Tokens      tokenParser
	Blacklist   auth.TokenBlacklist
	Store       *access.Store
	Resolvers   access.ResolverChain
	PublicPaths []string
	Metrics     *metrics.Metrics
	Logger      *logger.Logger
}

// Resultados del interceptor (etiqueta outcome de la métrica).
const (
	outcomePublic       = "public"
	outcomeMissing      = "missing_header"
	outcomeMalformed    = "malformed_header"
	outcomeBlacklisted  = "blacklisted"
	outcomeInvalid      = "invalid_token"
	outcomeRoleUnknown  = "role_unresolved"
	outcomeInsufficient = "insufficient_permission"
	outcomeGranted      = "granted"
)

// AccessInterceptor autentica el Bearer token y autoriza la petición contra la plantilla
// de permisos. Los pasos se evalúan en orden y el primero que rechaza corta la cadena:
//
//	ruta pública → pasa
//	sin header / header mal formado / token en lista negra / token inválido → 401
//	rol no resuelto / permiso insuficiente → 403
//
// Si autoriza, deja el *access.Principal en c.Locals(LocalPrincipal) y en c.UserContext().
func AccessInterceptor(cfg AccessConfig) fiber.Handler {
	public := cfg.PublicPaths
	if public == nil {
		public = DefaultPublicPaths
	}
	resolvers := cfg.Resolvers
	if len(resolvers) == 0 {
		resolvers = access.DefaultResolverChain()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	decide := func(c *fiber.Ctx, outcome string) {
		if cfg.Metrics != nil {
			cfg.Metrics.AccessDecisions.WithLabelValues(outcome).Inc()
		}
		log.Debug().Str("outcome", outcome).Str("method", c.Method()).Str("path", c.Path()).Msg("acceso")
	}
	reject := func(c *fiber.Ctx, status int, outcome, msg string) error {
		decide(c, outcome)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return func(c *fiber.Ctx) error {
		path := c.Path()
		if isPublicPath(path, public) {
			decide(c, outcomePublic)
			return c.Next()
		}

		// ── 1. Header ───────────────────────────────────────────────────────────
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return reject(c, fiber.StatusUnauthorized, outcomeMissing, "missing authorization header")
		}
		token, ok := bearerToken(header)
		if !ok {
			return reject(c, fiber.StatusUnauthorized, outcomeMalformed, "malformed authorization header")
		}

		// ── 2. Lista negra (un error de consulta también rechaza) ───────────────
		listed, err := cfg.Blacklist.IsBlacklisted(c.UserContext(), token)
		if err != nil {
			log.Error().Err(err).Msg("consulta de lista negra")
			return reject(c, fiber.StatusUnauthorized, outcomeBlacklisted, "token could not be verified")
		}
		if listed {
			return reject(c, fiber.StatusUnauthorized, outcomeBlacklisted, "token has been revoked")
		}

		// ── 3. Firma y vigencia ─────────────────────────────────────────────────
		claims, err := safeParse(cfg.Tokens, token)
		if err != nil {
			return reject(c, fiber.StatusUnauthorized, outcomeInvalid, "invalid or expired token")
		}

		// ── 4. Rol ──────────────────────────────────────────────────────────────
		role, ok := resolvers.Resolve(access.TokenIdentity{
			Username:     claims.Username,
			UserTypeID:   claims.UserTypeID,
			UserTypeRole: claims.UserTypeRole,
		})
		if !ok {
			return reject(c, fiber.StatusForbidden, outcomeRoleUnknown, "role could not be resolved")
		}

		// ── 5. Permiso sobre el módulo ──────────────────────────────────────────
		if !cfg.Store.HasEndpointAccess(role, path, c.Method()) {
			decide(c, outcomeInsufficient)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient permissions",
				"role":  role.Name(),
			})
		}

		p := &access.Principal{
			UserID:     claims.UserID,
			Username:   claims.Username,
			UserTypeID: claims.UserTypeID,
			Role:       role,
			Token:      token,
		}
		c.Locals(LocalPrincipal, p)
		c.SetUserContext(access.WithPrincipal(c.UserContext(), p))
		decide(c, outcomeGranted)
		return c.Next()
	}
}

// GetPrincipal devuelve el principal de la petición (nil si es una ruta pública).
func GetPrincipal(c *fiber.Ctx) *access.Principal {
	p, _ := c.Locals(LocalPrincipal).(*access.Principal)
	return p
}

func isPublicPath(path string, public []string) bool {
	for _, p := range public {
		if path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}

// bearerToken extrae el token de "Bearer <token>" (esquema sin distinguir mayúsculas).
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

func safeParse(p tokenParser, token string) (claims *jwt.Claims, err error) {
	defer func() {
		if r := recover(); r != nil {
			claims, err = nil, fmt.Errorf("%w: %v", jwt.ErrTokenInvalid, r)
		}
	}()
	claims, err = p.Parse(token)
	if err == nil && claims == nil {
		err = jwt.ErrTokenInvalid
	}
	return claims, err
}
