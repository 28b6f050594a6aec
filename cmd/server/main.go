package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phd-timeoff/internal/adapters/http/middleware"
	"phd-timeoff/internal/adapters/http/routes"
	"phd-timeoff/internal/adapters/remote"
	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/config"

	"github.com/gofiber/fiber/v2"

	_ "phd-timeoff/docs" // Swagger docs
)

// @title PhD TimeOff API
// @version 1.0
// @description Leave management API for PhD students with guide/HOD/Dean approval workflow
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@timeoff.example.edu

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host timeoff.example.edu
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Upstream client for the authoritative backend
	client := remote.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Token)

	// Seed data backs any collection the upstream cannot serve
	seed := config.LoadSeedData()
	stores := store.NewSet(client, seed.Users, seed.Leaves, seed.Balances, seed.Holidays)

	// Read-through: each collection picks remote or local once per session
	loadCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	stores.Load(loadCtx)
	cancel()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "PhD TimeOff API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass stores and cfg for dependency injection)
	cronService := routes.Setup(app, client, stores, cfg)

	// Daily reminders + balance period resets
	cronService.Start()
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
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
