package routes

import (
	"time"

	"phd-timeoff/internal/adapters/http/handlers"
	"phd-timeoff/internal/adapters/http/middleware"
	"phd-timeoff/internal/adapters/remote"
	"phd-timeoff/internal/adapters/store"
	"phd-timeoff/internal/config"
	"phd-timeoff/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Setup configures all routes for the application. It returns the cron
// service so main can control its lifecycle.
func Setup(app *fiber.App, client *remote.Client, stores *store.Set, cfg *config.Config) *services.CronService {
	// Initialize services
	notificationService := services.NewNotificationService(stores.Notifications, stores.Users)
	balanceService := services.NewBalanceService(stores.Balances)
	leaveService := services.NewLeaveService(stores.Leaves, stores.Users, balanceService, notificationService)
	authService := services.NewAuthService(client, stores.Users)
	userService := services.NewUserService(stores.Users)
	holidayService := services.NewHolidayService(stores.Holidays)
	dashboardService := services.NewDashboardService(stores.Leaves, stores.Users)
	reportService := services.NewReportService(stores.Leaves, stores.Users)
	cronService := services.NewCronService(leaveService, balanceService, notificationService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(leaveService)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService, authService)
	leaveHandler := handlers.NewLeaveHandler(leaveService, authService)
	balanceHandler := handlers.NewBalanceHandler(balanceService, authService)
	holidayHandler := handlers.NewHolidayHandler(holidayService, authService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, authService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, authService)
	reportHandler := handlers.NewReportHandler(reportService, authService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public + /me)
	setupAuthRoutes(apiV1.Group("/auth"), authHandler, cfg)

	// Leave routes (authenticated)
	leaveRoutes := apiV1.Group("/leaves")
	leaveRoutes.Use(middleware.AuthMiddleware(cfg))
	setupLeaveRoutes(leaveRoutes, leaveHandler)

	// Balance routes (authenticated)
	balanceRoutes := apiV1.Group("/balances")
	balanceRoutes.Use(middleware.AuthMiddleware(cfg))
	setupBalanceRoutes(balanceRoutes, balanceHandler)

	// User management routes (Admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Holiday routes (read for everyone, writes Admin only)
	holidayRoutes := apiV1.Group("/holidays")
	holidayRoutes.Use(middleware.AuthMiddleware(cfg))
	setupHolidayRoutes(holidayRoutes, holidayHandler)

	// Notification routes (authenticated)
	notificationRoutes := apiV1.Group("/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware(cfg))
	notificationRoutes.Use(middleware.NoCacheHeaders())
	notificationRoutes.Get("/", notificationHandler.ListNotifications)
	notificationRoutes.Put("/:id/read", notificationHandler.MarkRead)

	// Dashboard routes (authenticated)
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDashboardRoutes(dashboardRoutes, dashboardHandler)

	// Report routes (Admin only)
	reportRoutes := apiV1.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg))
	reportRoutes.Use(middleware.AdminOnly())
	reportRoutes.Get("/dean-document/:id", reportHandler.GenerateDeanDocument)
	reportRoutes.Get("/monthly", reportHandler.GetMonthlyReport)

	return cronService
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (5 req/min/IP against brute force)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupLeaveRoutes configures leave application routes
func setupLeaveRoutes(router fiber.Router, handler *handlers.LeaveHandler) {
	router.Get("/", handler.ListLeaves)
	router.Post("/", middleware.StudentOnly(), handler.SubmitLeave)
	router.Get("/:id", handler.GetLeave)
	router.Delete("/:id", middleware.AdminOnly(), handler.DeleteLeave)

	// Workflow transitions
	router.Put("/:id/guide-approve", middleware.FacultyOrHOD(), handler.GuideApprove)
	router.Put("/:id/hod-approve", middleware.HODOnly(), handler.HODApprove)
	router.Put("/:id/reject", middleware.Reviewer(), handler.RejectLeave)
	router.Put("/:id/dean-approve", middleware.AdminOnly(), handler.CompleteDeanApproval)
}

// setupBalanceRoutes configures leave balance routes
func setupBalanceRoutes(router fiber.Router, handler *handlers.BalanceHandler) {
	router.Get("/", middleware.AdminOnly(), handler.ListBalances)
	router.Get("/me", middleware.PrivateCacheHeaders(30*time.Second), handler.GetMyBalance)
	router.Get("/:studentId", middleware.Reviewer(), handler.GetBalance)
	router.Put("/:studentId", middleware.AdminOnly(), handler.SetBalance)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Post("/", handler.CreateUser)
	router.Get("/:id", handler.GetUser)
	router.Put("/:id", handler.UpdateUser)
	router.Delete("/:id", handler.DeleteUser)
}

// setupHolidayRoutes configures holiday calendar routes
func setupHolidayRoutes(router fiber.Router, handler *handlers.HolidayHandler) {
	router.Get("/", middleware.HolidayCache(), handler.ListHolidays)
	router.Post("/", middleware.AdminOnly(), handler.CreateHoliday)
	router.Put("/:id", middleware.AdminOnly(), handler.UpdateHoliday)
	router.Delete("/:id", middleware.AdminOnly(), handler.DeleteHoliday)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/stats", handler.GetStats)
	router.Get("/pending", handler.GetPendingApprovals)
	router.Get("/my-students", middleware.FacultyOrHOD(), handler.GetMyStudents)
	router.Get("/on-leave-today", handler.GetOnLeaveToday)
	router.Get("/special-attention", middleware.Reviewer(), handler.GetSpecialAttention)
}
