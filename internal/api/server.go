package api

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Spok95/warehouse-bot/internal/domain/warehouse"
)

type ServerConfig struct {
	Addr           string
	JWTSecret      string
	AdminLogin     string
	AdminPassword  string
	MetricsEnabled bool
}

type Server struct {
	app  *fiber.App
	addr string
	log  *slog.Logger
}

// NewServer собирает приложение Fiber: /health и /metrics открыты,
// остальное за Bearer-токеном.
func NewServer(cfg ServerConfig, log *slog.Logger, warehouseRepo *warehouse.Repo) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if cfg.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	Router(app, RouterDeps{
		Warehouses: NewWarehouseHandler(warehouseRepo),
		Stocks:     NewStockHandler(warehouseRepo),
		Movements:  NewMovementHandler(warehouseRepo),
		Auth:       NewAuthHandler(cfg.JWTSecret, cfg.AdminLogin, cfg.AdminPassword),
		JWTSecret:  cfg.JWTSecret,
	})

	return &Server{app: app, addr: cfg.Addr, log: log}
}

func (s *Server) Start() error {
	s.log.Info("http server listening", "addr", s.addr)
	if err := s.app.Listen(s.addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App — для HTTP-тестов через app.Test.
func (s *Server) App() *fiber.App { return s.app }

type RouterDeps struct {
	Warehouses *WarehouseHandler
	Stocks     *StockHandler
	Movements  *MovementHandler
	Auth       *AuthHandler
	JWTSecret  string
}

// Router регистрирует маршруты API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Post("/login", deps.Auth.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/me", deps.Auth.Me)

	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", deps.Warehouses.Create)
	warehouses.Get("/", deps.Warehouses.List)
	warehouses.Get("/:id", deps.Warehouses.GetByID)
	warehouses.Put("/:id", deps.Warehouses.Update)
	warehouses.Delete("/:id", deps.Warehouses.Delete)

	stocks := protected.Group("/stocks")
	stocks.Post("/", deps.Stocks.Create)
	stocks.Get("/", deps.Stocks.List)
	stocks.Get("/:id", deps.Stocks.GetByID)
	stocks.Put("/:id", deps.Stocks.UpdateThreshold)
	stocks.Delete("/:id", deps.Stocks.Delete)

	movements := protected.Group("/movements")
	movements.Post("/", deps.Movements.Create)
	movements.Get("/", deps.Movements.List)
}
