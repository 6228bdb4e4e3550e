// Package main provides the ShiftMash API server.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/shiftmash/shiftmash/pkg/eventbus"
	"github.com/shiftmash/shiftmash/pkg/locking"
	"github.com/shiftmash/shiftmash/pkg/persistence"
	"github.com/shiftmash/shiftmash/pkg/services"
	"github.com/shiftmash/shiftmash/pkg/web"
	"go.opentelemetry.io/otel/trace"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	locks       locking.LockManager
	eventBus    eventbus.EventBus
	tracer      trace.Tracer
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	locks locking.LockManager,
	eventBus eventbus.EventBus,
	tracer trace.Tracer,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		locks:       locks,
		eventBus:    eventBus,
		tracer:      tracer,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	matchConfig := services.DefaultMatchConfig()

	// EventBus is an interface value; services take the publisher side and
	// must see a true nil when the bus is disabled.
	var publisher eventbus.EventPublisher
	if a.eventBus != nil {
		publisher = a.eventBus
	}

	candidates := services.NewCandidates(a.persistence, matchConfig)
	requests := services.NewRequests(a.persistence, a.locks, publisher, a.tracer, matchConfig.Travel, a.logger)
	publishings := services.NewPublishings(a.persistence, a.locks, publisher, a.tracer, a.logger)
	shifts := services.NewShifts(a.persistence, publisher, nil, a.logger)

	handlers := web.NewAPIHandlers(a.persistence, candidates, requests, publishings, shifts, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("ShiftMash API")
	})

	app.Get("/stores", handlers.GetStores)
	app.Get("/workers", handlers.GetWorkers)

	s := app.Group("/shifts")
	s.Get("/", handlers.GetShifts)
	s.Patch("/:id", handlers.UpdateShift)
	s.Get("/:id/candidates", handlers.GetCandidates)

	p := app.Group("/publishings")
	p.Get("/", handlers.GetPublishings)
	p.Post("/recruitings", handlers.PublishRecruiting)
	p.Post("/availables", handlers.PublishAvailable)
	p.Post("/:kind/:id/approve", handlers.ApprovePublishing)
	p.Post("/:kind/:id/close", handlers.ClosePublishing)

	r := app.Group("/requests")
	r.Get("/", handlers.GetRequests)
	r.Post("/", handlers.CreateRequest)
	r.Post("/:id/approve", handlers.ApproveRequest)
	r.Post("/:id/reject", handlers.RejectRequest)

	app.Get("/summary", handlers.GetSummary)
	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	return a.App().Listen(":" + strconv.Itoa(port))
}
