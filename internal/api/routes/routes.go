package routes

import (
	"log"

	"saas-admin-backend/internal/api/handlers"
	"saas-admin-backend/internal/api/middleware"
	"saas-admin-backend/internal/auth"
	"saas-admin-backend/internal/config"
	"saas-admin-backend/internal/database/models"
	"saas-admin-backend/internal/gate"
	"saas-admin-backend/internal/repository"
	"saas-admin-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application. The returned
// watcher is the gate's polling loop; the caller owns its lifecycle and must
// Start it for the status endpoint to leave the checking state.
func SetupRoutes(db *gorm.DB, cfg *config.Config) (*gin.Engine, *gate.Watcher) {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	validator := validator.New()

	// Repositories
	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)
	serviceTypeRepo := repository.NewServiceTypeRepository(db)
	serviceInstanceRepo := repository.NewServiceInstanceRepository(db)
	maintenanceWindowRepo := repository.NewMaintenanceWindowRepository(db)
	serviceRequestRepo := repository.NewServiceRequestRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	// The gate is the single decision point for maintenance access; every
	// caller (route guard, status endpoint, per-service checks) shares it.
	// The watcher re-evaluates it on the configured interval and feeds the
	// status endpoint its snapshot.
	maintenanceGate := gate.New(maintenanceWindowRepo)
	maintenanceWatcher := gate.NewWatcher(maintenanceGate, cfg.MaintenancePollInterval())

	// Services
	companyService := service.NewCompanyService(companyRepo, validator)
	userService := service.NewUserService(userRepo, companyRepo, validator)
	catalogService := service.NewServiceCatalogService(serviceTypeRepo, serviceInstanceRepo, companyRepo, maintenanceGate, validator)
	maintenanceService := service.NewMaintenanceService(maintenanceWindowRepo, maintenanceGate, maintenanceWatcher, validator, cfg.MaintenanceReloadGrace())
	serviceRequestService := service.NewServiceRequestService(serviceRequestRepo, companyRepo, serviceTypeRepo, serviceInstanceRepo, validator)
	projectService := service.NewProjectService(projectRepo, companyRepo, validator)

	// Auth
	authConfig, err := auth.LoadAuthConfig("config/auth.yaml")
	if err != nil {
		log.Printf("Warning: Failed to load auth config: %v", err)
		authConfig = nil
	}

	var authHandler *auth.AuthHandler
	var authMiddleware *auth.AuthMiddleware
	if authConfig != nil {
		authService, err := auth.NewAuthService(authConfig, userRepo)
		if err != nil {
			log.Printf("Warning: Failed to initialize auth service: %v", err)
		} else {
			authHandler = auth.NewAuthHandler(authService)
			authMiddleware = auth.NewAuthMiddleware(authService)
		}
	}

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	companyHandler := handlers.NewCompanyHandler(companyService)
	userHandler := handlers.NewUserHandler(userService)
	catalogHandler := handlers.NewServiceCatalogHandler(catalogService)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)
	serviceRequestHandler := handlers.NewServiceRequestHandler(serviceRequestService)
	projectHandler := handlers.NewProjectHandler(projectService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth routes
	if authHandler != nil {
		authGroup := router.Group("/api/auth")
		{
			google := authGroup.Group("/google")
			{
				google.GET("/start", authHandler.Start)
				google.GET("/callback", authHandler.Callback)
			}
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/validate", authHandler.Validate)
			if authMiddleware != nil {
				authGroup.POST("/logout", authMiddleware.RequireAuth(), authHandler.Logout)
			}
		}
	}

	// API v1 routes. Authentication runs first so the maintenance guard can
	// see the caller's role; the guard itself exempts the status endpoints.
	v1 := router.Group("/api/v1")
	if authMiddleware != nil {
		v1.Use(authMiddleware.RequireAuth())
	}
	v1.Use(middleware.MaintenanceGuard(maintenanceGate))

	{
		// Company routes
		companies := v1.Group("/companies")
		{
			companies.GET("", companyHandler.ListCompanies)
			companies.POST("", companyHandler.CreateCompany)
			companies.GET("/:id", companyHandler.GetCompany)
			companies.PUT("/:id", companyHandler.UpdateCompany)
			companies.PATCH("/:id/status", companyHandler.SetCompanyStatus)
			companies.DELETE("/:id", companyHandler.DeleteCompany)
			companies.GET("/:id/service-instances", catalogHandler.GetCompanyServiceInstances)
			companies.GET("/:id/projects", projectHandler.ListCompanyProjects)
		}

		// User routes
		users := v1.Group("/users")
		{
			users.GET("", userHandler.ListUsers) // Optional company_id parameter
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Service catalog routes
		serviceTypes := v1.Group("/service-types")
		{
			serviceTypes.GET("", catalogHandler.ListServiceTypes)
			serviceTypes.GET("/:id", catalogHandler.GetServiceType)
			serviceTypes.PATCH("/:id/status", catalogHandler.SetServiceTypeStatus)
		}

		serviceInstances := v1.Group("/service-instances")
		{
			serviceInstances.POST("", catalogHandler.CreateServiceInstance)
			serviceInstances.PUT("/:id", catalogHandler.UpdateServiceInstance)
			serviceInstances.PATCH("/:id/status", catalogHandler.SetServiceInstanceStatus)
			serviceInstances.DELETE("/:id", catalogHandler.DeleteServiceInstance)
			serviceInstances.GET("/:id/access", catalogHandler.CheckServiceAccess)
		}

		// Maintenance routes. Status stays reachable during a window; the
		// scheduling endpoints are super-admin only.
		maintenance := v1.Group("/maintenance")
		{
			maintenance.GET("/status", maintenanceHandler.GetMaintenanceStatus)
			maintenance.GET("/active", maintenanceHandler.GetActiveMaintenanceWindow)

			windows := maintenance.Group("/windows")
			if authMiddleware != nil {
				windows.Use(authMiddleware.RequireRole(models.RoleSuperAdmin))
			}
			{
				windows.POST("", maintenanceHandler.CreateMaintenanceWindow)
				windows.GET("/upcoming", maintenanceHandler.GetUpcomingMaintenanceWindows)
				windows.GET("/history", maintenanceHandler.GetMaintenanceHistory)
				windows.POST("/:id/cancel", maintenanceHandler.CancelMaintenanceWindow)
				windows.DELETE("/:id", maintenanceHandler.DeleteMaintenanceWindow)
			}
		}

		// Service request routes
		serviceRequests := v1.Group("/service-requests")
		{
			serviceRequests.GET("", serviceRequestHandler.ListServiceRequests) // Optional company_id parameter
			serviceRequests.POST("", serviceRequestHandler.CreateServiceRequest)
			serviceRequests.POST("/:id/approve", serviceRequestHandler.ApproveServiceRequest)
			serviceRequests.POST("/:id/reject", serviceRequestHandler.RejectServiceRequest)
		}

		// Project routes
		projects := v1.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.POST("/:id/milestones", projectHandler.AddProjectMilestone)
		}

		milestones := v1.Group("/milestones")
		{
			milestones.POST("/:id/complete", projectHandler.CompleteProjectMilestone)
			milestones.DELETE("/:id", projectHandler.DeleteProjectMilestone)
		}
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router, maintenanceWatcher
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	return router
}
