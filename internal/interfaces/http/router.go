package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-pms-api/internal/application/access"
	"github.com/jhoicas/hotel-pms-api/internal/application/auth"
	"github.com/jhoicas/hotel-pms-api/internal/application/folio"
	"github.com/jhoicas/hotel-pms-api/internal/application/reservations"
	"github.com/jhoicas/hotel-pms-api/internal/application/rooms"
	"github.com/jhoicas/hotel-pms-api/internal/application/stays"
	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
	"github.com/jhoicas/hotel-pms-api/internal/scheduler"
	"github.com/jhoicas/hotel-pms-api/pkg/jwt"
	"github.com/jhoicas/hotel-pms-api/pkg/logger"
	"github.com/jhoicas/hotel-pms-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ReservationUC  *reservations.UseCase
	StayUC         *stays.UseCase
	BillUC         *folio.BillUseCase
	AdvanceUC      *folio.AdvanceUseCase
	PDFUC          *folio.PDFUseCase
	RoomUC         *rooms.RoomUseCase
	HousekeepingUC *rooms.HousekeepingUseCase
	Scheduler      *scheduler.Scheduler

	Store     *access.Store
	Checker   *access.Checker
	Tokens    *jwt.Service
	Blacklist auth.TokenBlacklist
	Metrics   *metrics.Metrics
	Logger    *logger.Logger
}

// Router registra las rutas de la API. Todo lo que cuelga del prefijo pasa por el
// interceptor de acceso; login y logout quedan como rutas públicas.
func Router(app *fiber.App, deps RouterDeps) {
	prefix := deps.Store.APIPrefix()
	api := app.Group(prefix, AccessInterceptor(AccessConfig{
		Tokens:      deps.Tokens,
		Blacklist:   deps.Blacklist,
		Store:       deps.Store,
		Resolvers:   access.DefaultResolverChain(),
		PublicPaths: PublicPaths(prefix),
		Metrics:     deps.Metrics,
		Logger:      deps.Logger,
	}))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)

	// Reservations
	reservationHandler := NewReservationHandler(deps.ReservationUC)
	api.Post("/reservations", reservationHandler.Create)
	api.Get("/reservations", reservationHandler.List)
	api.Get("/reservations/:id", reservationHandler.GetByID)
	api.Delete("/reservations/:id", reservationHandler.Cancel)

	// Check-ins
	checkInHandler := NewCheckInHandler(deps.StayUC)
	api.Post("/check-ins", checkInHandler.Create)
	api.Get("/check-ins/:id", checkInHandler.GetByID)
	api.Post("/check-ins/:id/checkout", checkInHandler.Checkout)

	// Bills (folios)
	billHandler := NewBillHandler(deps.BillUC, deps.PDFUC)
	api.Post("/bills", billHandler.Create)
	api.Get("/bills", billHandler.ListByCheckIn)
	api.Get("/bills/:id", billHandler.GetByID)
	api.Get("/bills/:id/pdf", billHandler.DownloadPDF)
	api.Post("/bills/:id/payments", billHandler.AddPayment)
	api.Delete("/bills/:id/payments/:paymentId", billHandler.VoidPayment)
	api.Post("/bills/:id/charges", billHandler.AddCharge)
	api.Post("/bills/:id/split",
		RequireModuleLevel(rbac.ModuleBills, rbac.LevelFull, deps.Checker),
		billHandler.Split,
	)

	// Advances
	advanceHandler := NewAdvanceHandler(deps.AdvanceUC)
	api.Post("/advances", advanceHandler.Create)
	api.Get("/advances", advanceHandler.ListByReservation)

	// Housekeeping
	hkHandler := NewHousekeepingHandler(deps.HousekeepingUC)
	api.Post("/housekeeping/tasks", hkHandler.Create)
	api.Get("/housekeeping/tasks", hkHandler.List)
	api.Patch("/housekeeping/tasks/:id/complete", hkHandler.Complete)

	// Rooms
	roomHandler := NewRoomHandler(deps.RoomUC)
	api.Get("/rooms", roomHandler.List)
	api.Patch("/rooms/:id/status", roomHandler.UpdateStatus)

	// Permissions (lectura de la plantilla)
	permHandler := NewPermissionHandler(deps.Store)
	api.Get("/permissions/me", permHandler.Me)
	api.Get("/permissions/roles/:role", permHandler.ByRole)

	// Scheduler (solo ADMIN)
	if deps.Scheduler != nil {
		schedHandler := NewSchedulerHandler(deps.Scheduler)
		adminOnly := RequireRole(deps.Checker, rbac.RoleAdmin.Code())
		api.Get("/scheduler/jobs", adminOnly, schedHandler.List)
		api.Post("/scheduler/jobs/:name/run", adminOnly, schedHandler.Run)
	}
}
