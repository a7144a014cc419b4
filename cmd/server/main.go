package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/http/middleware"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/http/routes"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/repositories"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/config"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/services"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/notify"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/storage"

	"github.com/gofiber/fiber/v2"

	_ "github.com/nishageedayarathna/DigiBox-sub000/docs" // Swagger docs
)

// @title DigiBox API
// @version 1.0
// @description DigiBox micro-donation platform. Causes pass admin, GS and DS review before donors can fund them.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@digibox.lk

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

// run wires and serves the API. Returning instead of exiting lets the
// deferred cleanup close the queue and the database on startup failures.
func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	log.Println("✅ Database migration completed")

	// Notification transport
	queue, closeQueue, err := newQueue(cfg)
	if err != nil {
		return fmt.Errorf("failed to start notifications: %w", err)
	}
	defer closeQueue()
	notifier := services.NewNotificationService(queue)

	// Upload storage
	store, err := storage.New(cfg.Uploads.Dir, cfg.Uploads.URLPrefix)
	if err != nil {
		return fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	userRepo := repositories.NewUserRepository(db)
	causeRepo := repositories.NewCauseRepository(db)

	// Seed the first admin
	userService := services.NewUserService(userRepo, causeRepo, notifier)
	if err := config.NewSeeder(adminAccounts{userService}, cfg).Run(context.Background()); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Start Cron Service for officer reminders
	if cfg.Cron.Enabled {
		cronService := services.NewCronService(causeRepo, userRepo, notifier, cfg.Cron)
		if err := cronService.Start(); err != nil {
			return fmt.Errorf("failed to start cron: %w", err)
		}
		defer cronService.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "DigiBox API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    4 * 1024 * 1024,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, cfg, routes.Dependencies{
		Notifier: notifier,
		Store:    store,
	})

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// newQueue returns the notification queue selected by NOTIFY_DRIVER and a
// function that flushes and releases it
func newQueue(cfg *config.Config) (notify.Queue, func(), error) {
	if cfg.Notify.Driver == config.NotifyDriverRabbitMQ {
		q, err := notify.NewRabbitQueue(cfg.Notify.Rabbit())
		if err != nil {
			return nil, nil, err
		}
		log.Printf("📨 Notifications published to RabbitMQ exchange %s", cfg.Notify.RabbitExchange)
		return q, func() { _ = q.Close() }, nil
	}

	d := notify.NewDispatcher(newSender(cfg), cfg.Notify.Workers, cfg.Notify.Buffer)
	d.Start()
	return d, d.Stop, nil
}

// newSender mails through SMTP when a host is configured and logs otherwise
func newSender(cfg *config.Config) notify.Sender {
	if cfg.SMTP.Host == "" {
		log.Println("⚠️ SMTP host not set, emails will be logged only")
		return notify.LogSender{}
	}
	return notify.NewSMTPSender(notify.SMTPConfig(cfg.SMTP))
}

// adminAccounts adapts UserService to the seeder
type adminAccounts struct {
	*services.UserService
}

func (a adminAccounts) CreateAdmin(ctx context.Context, username, email, password string) error {
	_, err := a.UserService.CreateAdmin(ctx, username, email, password)
	return err
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
