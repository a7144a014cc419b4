package routes

import (
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/http/handlers"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/http/middleware"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/repositories"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/config"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/services"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Dependencies are the process-wide collaborators built by main
type Dependencies struct {
	Notifier *services.NotificationService
	Store    *storage.Store
}

// Handlers groups every HTTP handler
type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Cause     *handlers.CauseHandler
	Approval  *handlers.ApprovalHandler
	Donor     *handlers.DonorHandler
	Dashboard *handlers.DashboardHandler
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, deps Dependencies) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	causeRepo := repositories.NewCauseRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)
	donationRepo := repositories.NewDonationRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, deps.Notifier, cfg)
	userService := services.NewUserService(userRepo, causeRepo, deps.Notifier)
	hierarchyService := services.NewHierarchyService(userRepo)
	causeService := services.NewCauseService(causeRepo, userRepo, historyRepo, hierarchyService, deps.Store, deps.Notifier)
	donationService := services.NewDonationService(donationRepo, causeRepo, userRepo, historyRepo, deps.Notifier)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	h := &Handlers{
		Health:    handlers.NewHealthHandler(),
		Auth:      handlers.NewAuthHandler(authService),
		User:      handlers.NewUserHandler(userService, hierarchyService),
		Cause:     handlers.NewCauseHandler(causeService),
		Approval:  handlers.NewApprovalHandler(causeService),
		Donor:     handlers.NewDonorHandler(causeService, donationService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
	}

	// Health check & root routes
	app.Get("/", h.Health.Root)
	app.Get("/health", h.Health.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Evidence files and verification letters. Names are random so they never change.
	app.Use(cfg.Uploads.URLPrefix, middleware.CacheControl(24*time.Hour))
	app.Static(cfg.Uploads.URLPrefix, cfg.Uploads.Dir)

	// API v1 group
	SetupAPIV1(app.Group("/api/v1"), h, cfg)
}

// SetupAPIV1 configures API v1 routes
func SetupAPIV1(router fiber.Router, h *Handlers, cfg *config.Config) {
	// API Info
	router.Get("/", h.Health.APIInfo)

	auth := middleware.AuthMiddleware(cfg)

	// Auth routes
	setupAuthRoutes(router.Group("/auth", middleware.NoCacheHeaders()), h.Auth, auth)

	// Hierarchy lookups (any authenticated user)
	router.Get("/hierarchy/areas", auth, middleware.PrivateCacheHeaders(5*time.Minute), h.User.GSAreas)

	// Admin routes
	adminRoutes := router.Group("/admin", auth, middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, h)

	// GS officer routes
	gsRoutes := router.Group("/gs", auth, middleware.RoleMiddleware(domain.RoleGS))
	setupOfficerRoutes(gsRoutes, h.Approval.GSApprove, h.Approval.GSReject, h.Approval)

	// DS officer routes
	dsRoutes := router.Group("/ds", auth, middleware.RoleMiddleware(domain.RoleDS))
	setupOfficerRoutes(dsRoutes, h.Approval.DSApprove, h.Approval.DSReject, h.Approval)

	// Creator routes
	causeRoutes := router.Group("/cause", auth, middleware.RoleMiddleware(domain.RoleCreator))
	setupCauseRoutes(causeRoutes, h.Cause, h.Dashboard)

	// Donor routes
	donorRoutes := router.Group("/donor", auth, middleware.RoleMiddleware(domain.RoleDonor))
	setupDonorRoutes(donorRoutes, h.Donor)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, auth fiber.Handler) {
	// Public routes with rate limiting
	router.Post("/signup", middleware.AuthRateLimiter(), handler.Signup)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)

	// Protected routes
	router.Get("/me", auth, handler.Me)
	router.Put("/reset-password", auth, middleware.StrictRateLimiter(), handler.ResetPassword)
}

// setupAdminRoutes configures admin routes
func setupAdminRoutes(router fiber.Router, h *Handlers) {
	// Officer provisioning and user management
	router.Post("/add-ds", h.User.AddDS)
	router.Post("/add-gs", h.User.AddGS)
	router.Get("/users", h.User.ListUsers)
	router.Delete("/users/:id", h.User.DeleteUser)
	router.Get("/hierarchy", h.User.OrgChart)

	// Cause review
	router.Get("/causes", h.Approval.ListCauses)
	router.Get("/causes/admin-dashboard", h.Dashboard.GetAdminDashboard)
	router.Get("/causes/:id", h.Approval.GetCause)
	router.Get("/causes/:id/history", h.Approval.History)
	router.Put("/causes/:id/admin-action", h.Approval.AdminAction)
	router.Put("/publish/:id", h.Approval.Publish)
}

// setupOfficerRoutes configures the GS or DS gate routes
func setupOfficerRoutes(router fiber.Router, approve, reject fiber.Handler, handler *handlers.ApprovalHandler) {
	router.Get("/pending-causes", handler.PendingCauses)
	router.Get("/causes", handler.OfficerCauses)
	router.Put("/approve/:id", approve)
	router.Put("/reject/:id", reject)
}

// setupCauseRoutes configures creator routes
func setupCauseRoutes(router fiber.Router, handler *handlers.CauseHandler, dashboard *handlers.DashboardHandler) {
	router.Post("/create", handler.Create)
	router.Get("/my-causes", handler.MyCauses)
	router.Get("/dashboard", dashboard.GetCreatorDashboard)
	router.Get("/:id", handler.GetMine)
}

// setupDonorRoutes configures donor routes
func setupDonorRoutes(router fiber.Router, handler *handlers.DonorHandler) {
	router.Get("/causes", handler.ListCauses)
	router.Get("/causes/:id", handler.GetCause)
	router.Post("/donate/:id", handler.Donate)
	router.Get("/history", handler.History)
}
