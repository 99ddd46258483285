package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/hotel-pms-api/internal/application/access"
	"github.com/jhoicas/hotel-pms-api/internal/application/auth"
	"github.com/jhoicas/hotel-pms-api/internal/application/folio"
	"github.com/jhoicas/hotel-pms-api/internal/application/reservations"
	"github.com/jhoicas/hotel-pms-api/internal/application/rooms"
	"github.com/jhoicas/hotel-pms-api/internal/application/stays"
	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
	"github.com/jhoicas/hotel-pms-api/internal/infrastructure/blacklist"
	infrapdf "github.com/jhoicas/hotel-pms-api/internal/infrastructure/pdf"
	"github.com/jhoicas/hotel-pms-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/hotel-pms-api/internal/interfaces/http"
	"github.com/jhoicas/hotel-pms-api/internal/scheduler"
	"github.com/jhoicas/hotel-pms-api/pkg/config"
	"github.com/jhoicas/hotel-pms-api/pkg/jwt"
	"github.com/jhoicas/hotel-pms-api/pkg/logger"
	"github.com/jhoicas/hotel-pms-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	m := metrics.New("hotel")

	// Lista negra de tokens: memoria (una instancia) o Redis (compartida).
	var tokenBlacklist auth.TokenBlacklist
	var pruner scheduler.Pruner
	switch cfg.Blacklist.Driver {
	case "redis":
		client, err := blacklist.NewRedisClient(ctx, cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		tokenBlacklist = blacklist.NewRedis(client)
	default:
		mem := blacklist.NewMemory()
		tokenBlacklist, pruner = mem, mem
	}

	// Plantilla de permisos
	store := access.NewStore(cfg.RBAC.APIPrefix, rbac.DefaultMethodPolicy())
	if cfg.RBAC.TemplatePath != "" {
		if err := access.LoadTemplateFile(store, cfg.RBAC.TemplatePath); err != nil {
			log.Fatal().Err(err).Str("path", cfg.RBAC.TemplatePath).Msg("plantilla de permisos")
		}
		log.Info().Str("path", cfg.RBAC.TemplatePath).Msg("plantilla de permisos cargada")
	}
	checker := access.NewChecker(store)

	tokens, err := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("servicio JWT")
	}

	// Repositorios
	userRepo := postgres.NewUserRepository(pool)
	reservationRepo := postgres.NewReservationRepository(pool)
	checkInRepo := postgres.NewCheckInRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	advanceRepo := postgres.NewAdvanceRepository(pool)
	roomRepo := postgres.NewRoomRepository(pool)
	taskRepo := postgres.NewHousekeepingTaskRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, tokens, tokenBlacklist)
	reservationUC := reservations.NewUseCase(reservationRepo)
	stayUC := stays.NewUseCase(checkInRepo, txRunner)
	billUC := folio.NewBillUseCase(billRepo, checkInRepo, advanceRepo, txRunner, checker)
	advanceUC := folio.NewAdvanceUseCase(reservationRepo, checkInRepo, advanceRepo, txRunner)
	pdfUC := folio.NewPDFUseCase(billRepo, infrapdf.NewMarotoPDFGenerator(), cfg.App.HotelName)
	roomUC := rooms.NewRoomUseCase(roomRepo, taskRepo)
	housekeepingUC := rooms.NewHousekeepingUseCase(roomRepo, taskRepo)
	roomStatusSvc := rooms.NewRoomStatusService(roomRepo, taskRepo, checkInRepo, log.Component("room-status"))

	// Scheduler
	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.Scheduler.Timezone).Msg("zona horaria del scheduler")
	}
	sched := scheduler.New(scheduler.Options{
		Location: loc,
		Timeout:  cfg.Scheduler.JobTimeout,
		Logger:   log.Component("scheduler"),
		Metrics:  m,
	})
	if err := scheduler.RegisterDefaults(sched, cfg.Scheduler, roomStatusSvc, pruner); err != nil {
		log.Fatal().Err(err).Msg("registrar jobs")
	}
	if cfg.Scheduler.Enabled {
		sched.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.NewErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), m))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    "Hotel PMS API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ReservationUC:  reservationUC,
		StayUC:         stayUC,
		BillUC:         billUC,
		AdvanceUC:      advanceUC,
		PDFUC:          pdfUC,
		RoomUC:         roomUC,
		HousekeepingUC: housekeepingUC,
		Scheduler:      sched,
		Store:          store,
		Checker:        checker,
		Tokens:         tokens,
		Blacklist:      tokenBlacklist,
		Metrics:        m,
		Logger:         log.Component("access"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del scheduler")
	}

	log.Info().Msg("aplicación detenida")
}
