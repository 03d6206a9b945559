// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"vaultbank/internal/handlers"
	"vaultbank/internal/middleware"
	"vaultbank/internal/models"
	"vaultbank/internal/repositories"
	"vaultbank/internal/services/admin"
	"vaultbank/internal/services/alert"
	"vaultbank/internal/services/auth"
	"vaultbank/internal/services/funding"
	"vaultbank/internal/services/risk"
	"vaultbank/internal/services/ticket"
	"vaultbank/internal/services/transaction"
	"vaultbank/internal/services/user"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	transactionRepo := repositories.NewTransactionRepository(repositories.DB)
	alertRepo := repositories.NewAlertRepository(repositories.DB)
	ticketRepo := repositories.NewTicketRepository(repositories.DB)

	// Initialize services in dependency order
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo)
	riskService := risk.NewService(risk.NewHistoryReader(transactionRepo))
	alertService := alert.NewService(alertRepo, transactionRepo)
	transactionService := transaction.NewService(transactionRepo, userRepo, riskService, alertService)
	fundingService := funding.NewService(funding.NewTokenizer(), transactionService)
	ticketService := ticket.NewService(ticketRepo)
	adminService := admin.NewService(userRepo, transactionRepo, alertRepo, ticketRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	fundingHandler := handlers.NewFundingHandler(fundingService)
	alertHandler := handlers.NewAlertHandler(alertService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	adminHandler := handlers.NewAdminHandler(adminService, userService, transactionService)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/register", userHandler.RegisterUser)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/health", handlers.HealthCheck)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to VaultBank API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Protected routes with auth middleware
	protected := api.Use(authMiddleware.Handler)

	setupUserRoutes(protected, userHandler, transactionHandler, fundingHandler, alertHandler, ticketHandler, authHandler)
	setupSupportRoutes(protected, ticketHandler)
	setupAdminRoutes(app, authMiddleware, adminHandler, alertHandler)
}

func setupUserRoutes(
	router fiber.Router,
	userHandler *handlers.UserHandler,
	transactionHandler *handlers.TransactionHandler,
	fundingHandler *handlers.FundingHandler,
	alertHandler *handlers.AlertHandler,
	ticketHandler *handlers.TicketHandler,
	authHandler *handlers.AuthHandler,
) {
	// Account routes
	router.Get("/profile", userHandler.GetProfile)
	router.Get("/recipients", userHandler.ListRecipients)
	router.Post("/change-password", middleware.HasPermission(models.PermissionChangePassword), authHandler.ChangePassword)
	router.Post("/logout", authHandler.LogoutUser)

	// Transaction routes
	transactions := router.Group("/transactions")
	transactions.Post("/", middleware.HasPermission(models.PermissionTransactionWrite), transactionHandler.CreateTransaction)
	transactions.Get("/", middleware.HasPermission(models.PermissionTransactionRead), transactionHandler.GetUserTransactions)
	transactions.Get("/:id", middleware.HasPermission(models.PermissionTransactionRead), transactionHandler.GetTransaction)

	// Funding routes
	router.Post("/deposit", middleware.HasPermission(models.PermissionTransactionWrite), fundingHandler.Deposit)

	// Alert routes
	router.Get("/alerts", middleware.HasPermission(models.PermissionAlertRead), alertHandler.GetUserAlerts)

	// Ticket routes
	tickets := router.Group("/tickets")
	tickets.Post("/", middleware.HasPermission(models.PermissionTicketWrite), ticketHandler.OpenTicket)
	tickets.Get("/", ticketHandler.GetUserTickets)
	tickets.Get("/:id", ticketHandler.GetTicket)
}

func setupSupportRoutes(router fiber.Router, ticketHandler *handlers.TicketHandler) {
	support := router.Group("/support", middleware.RequireRole("support"))

	support.Get("/tickets", middleware.HasPermission(models.PermissionTicketManage), ticketHandler.ListTickets)
	support.Put("/tickets/:id", middleware.HasPermission(models.PermissionTicketManage), ticketHandler.UpdateTicket)
}

func setupAdminRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware, adminHandler *handlers.AdminHandler, alertHandler *handlers.AlertHandler) {
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	admin.Get("/summary", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetSummary)
	admin.Get("/users", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.ListUsers)
	admin.Post("/users", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.CreateUser)
	admin.Delete("/users/:id", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.DeleteUser)
	admin.Get("/transactions", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.ListTransactions)

	admin.Get("/alerts", middleware.HasPermission(models.PermissionAlertRead), alertHandler.ListAlerts)
	admin.Get("/alerts/:id", middleware.HasPermission(models.PermissionAlertRead), alertHandler.GetAlert)
	admin.Put("/alerts/:id", middleware.HasPermission(models.PermissionAlertManage), alertHandler.ResolveAlert)

	admin.Get("/cache-stats", handlers.CacheStats)
}
