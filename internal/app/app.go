// Package app wires configuration, storage, messaging, services and HTTP
// handlers into a runnable server.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"farmconnect/internal/config"
	"farmconnect/internal/handlers"
	"farmconnect/internal/middleware"
	"farmconnect/internal/repositories"
	"farmconnect/internal/services"
	"farmconnect/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// App is the assembled server.
type App struct {
	Fiber     *fiber.App
	Auth      *services.AuthService
	Chat      *services.ChatService
	Detection *services.DetectionService

	cfg      *config.Config
	brokerUp bool
	closers  []func() error
}

// New opens the configured store and broker and builds the server around them.
func New(cfg *config.Config) (*App, error) {
	store, closeStore, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := repositories.Seed(store); err != nil {
		closeStore()
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	var mq services.Publisher
	var closers []func() error
	if cfg.RabbitMQURL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: services.Exchange})
		if err != nil {
			// Events are optional; the API keeps working without a broker.
			slog.Warn("RabbitMQ unavailable, events disabled", "error", err)
		} else {
			if err := client.ConsumeEvents(rabbitmq.LogEvent); err != nil {
				slog.Warn("failed to start event consumer", "error", err)
			}
			mq = client
			closers = append(closers, client.Close)
		}
	}

	a := Build(cfg, store, mq)
	a.closers = append(closers, closeStore)
	return a, nil
}

// OpenStore returns the store for cfg.StoreDriver and a function releasing it.
func OpenStore(cfg *config.Config) (*repositories.Store, func() error, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return repositories.NewMemoryStore(), func() error { return nil }, nil
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s database: %w", cfg.StoreDriver, err)
	}
	store, err := repositories.NewGORMStore(db)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	slog.Info("database connected", "driver", cfg.StoreDriver)
	return store, sqlDB.Close, nil
}

// Build assembles services and routes over an existing store. mq may be nil.
func Build(cfg *config.Config, store *repositories.Store, mq services.Publisher) *App {
	productService := services.NewProductService(store.Products, mq)
	rentalService := services.NewRentalService(store.Machines, store.Bookings, mq)
	authService := services.NewAuthService(store.Users, cfg.JWTSecret)
	chatService := services.NewChatService(services.ChatConfig{
		ReplyDelay: cfg.ChatReplyDelay,
		VoiceDelay: cfg.VoiceDelay,
		SessionTTL: cfg.SessionTTL,
	})
	detectionService := services.NewDetectionService(services.DetectionConfig{
		Duration:  cfg.AnalysisDuration,
		Tick:      cfg.AnalysisTick,
		Retention: cfg.AnalysisRetention,
	})
	dashboardService := services.NewDashboardService()

	app := fiber.New(fiber.Config{
		AppName:      "FarmConnect",
		ErrorHandler: errorHandler,
		BodyLimit:    10 * 1024 * 1024,
		// Request values end up in the stores.
		Immutable: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))

	a := &App{
		Fiber:     app,
		Auth:      authService,
		Chat:      chatService,
		Detection: detectionService,
		cfg:       cfg,
		brokerUp:  mq != nil,
	}
	app.Get("/health", a.health)

	apiV1 := app.Group("/api/v1")
	auth := middleware.AuthRequired(authService)

	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1, auth)
	handlers.NewRentalHandler(rentalService).RegisterRoutes(apiV1, auth)
	handlers.NewChatHandler(chatService).RegisterRoutes(apiV1)
	handlers.NewDetectionHandler(detectionService).RegisterRoutes(apiV1)
	handlers.NewDashboardHandler(dashboardService).RegisterRoutes(apiV1)

	return a
}

func (a *App) health(c *fiber.Ctx) error {
	broker := "disabled"
	if a.brokerUp {
		broker = "connected"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
		"store":  a.cfg.StoreDriver,
		"broker": broker,
	})
}

// errorHandler renders errors that escape the handlers, such as unknown
// routes, in the same shape as handler errors.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled error", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{
		"message": utils.StatusMessage(code),
		"error":   err.Error(),
	})
}

// Listen serves HTTP on addr until Shutdown is called.
func (a *App) Listen(addr string) error {
	slog.Info("starting server", "addr", addr)
	return a.Fiber.Listen(addr)
}

// Shutdown cancels pending chat replies and analyses, then stops the HTTP
// server and closes the broker and store.
func (a *App) Shutdown() error {
	a.Chat.Shutdown()
	a.Detection.Shutdown()

	var errs []error
	if err := a.Fiber.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
