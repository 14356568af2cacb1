package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/ponto/internal/admin"
	"github.com/saturnino-fabrica-de-software/ponto/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/ponto/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/ponto/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/ponto/internal/ratelimit"
	"github.com/saturnino-fabrica-de-software/ponto/internal/service"
	"github.com/saturnino-fabrica-de-software/ponto/internal/ws"
)

type Dependencies struct {
	Recognition *service.RecognitionService
	Enrollment  *service.EnrollmentService
	Admin       *admin.Service
	JWT         *admin.JWTService
	RateLimiter *ratelimit.RateLimiter
	RateLimit   int
	Hub         *ws.Hub
	DB          *pgxpool.Pool
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Ponto API",
		BodyLimit:    12 * 1024 * 1024,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Swagger documentation (no auth required)
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints (no auth required)
	healthHandler := handler.NewHealthHandler(r.deps.safeDB())
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	if r.deps == nil {
		return
	}

	v1 := r.app.Group("/v1")

	// Kiosk endpoints are unauthenticated but rate limited per client IP
	faceHandler := handler.NewFaceHandler(r.deps.Recognition, r.logger)
	activityHandler := handler.NewActivityHandler(r.deps.Recognition, r.logger)

	kioskLimit := func(c *fiber.Ctx) error { return c.Next() }
	if r.deps.RateLimiter != nil {
		kioskLimit = middleware.RateLimit(r.deps.RateLimiter, r.deps.RateLimit, r.logger)
	}

	v1.Post("/attendance/recognize", kioskLimit, faceHandler.Recognize)
	v1.Get("/attendance/recent", activityHandler.Recent)
	v1.Post("/faces/detect", kioskLimit, faceHandler.Detect)

	// Employee enrollment
	employeeHandler := handler.NewEmployeeHandler(r.deps.Enrollment, r.logger)
	v1.Post("/employees", employeeHandler.Register)
	v1.Get("/employees", employeeHandler.List)
	v1.Get("/employees/:id", employeeHandler.Get)
	v1.Delete("/employees/:id", employeeHandler.Delete)

	// WebSocket activity feed
	if r.deps.Hub != nil {
		v1.Get("/ws", ws.UpgradeMiddleware(), ws.Handler(r.deps.Hub))
	}

	// Admin routes
	adminHandler := handler.NewAdminHandler(r.deps.Admin, r.logger)
	adminGroup := v1.Group("/admin")
	adminGroup.Post("/login", adminHandler.Login)

	authed := adminGroup.Group("", middleware.AdminAuth(middleware.AdminAuthDependencies{
		JWTService: r.deps.JWT,
		Logger:     r.logger,
	}))
	authed.Get("/stats", adminHandler.Stats)
	authed.Get("/attendance/daily", adminHandler.Daily)
	authed.Get("/export", adminHandler.Export)
	authed.Post("/users", adminHandler.CreateUser)
}

func (d *Dependencies) safeDB() handler.Pinger {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	return r.app.Shutdown()
}
