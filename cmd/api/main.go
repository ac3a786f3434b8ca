package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"assetdesk/internal/config"
	"assetdesk/internal/database"
	"assetdesk/internal/events"
	"assetdesk/internal/middleware"
	"assetdesk/internal/modules/audit"
	"assetdesk/internal/modules/auth"
	"assetdesk/internal/modules/borrow"
	"assetdesk/internal/modules/department"
	"assetdesk/internal/modules/inventory"
	"assetdesk/internal/modules/report"
	"assetdesk/internal/modules/user"
	"assetdesk/internal/pkg/imagekit"
	jwtsvc "assetdesk/internal/pkg/jwt"
	"assetdesk/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	photos := imagekit.New(cfg.ImageKitPrivateKey, cfg.ImageKitFolder)
	hub := events.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j, auditRepo)
	authHandler := auth.NewHandler(authService)

	inventoryService := inventory.NewService(itemRepo, requestRepo, photos, auditRepo, hub)
	inventoryHandler := inventory.NewHandler(inventoryService)

	borrowService := borrow.NewService(requestRepo, itemRepo, userRepo, deptRepo, auditRepo, hub)
	borrowHandler := borrow.NewHandler(borrowService)

	deptService := department.NewService(deptRepo, userRepo, auditRepo, hub)
	deptHandler := department.NewHandler(deptService)

	userService := user.NewService(userRepo, deptRepo, auditRepo, hub)
	userHandler := user.NewHandler(userService)

	reportService := report.NewService(itemRepo, requestRepo, userRepo, auditRepo)
	reportHandler := report.NewHandler(reportService)

	auditService := audit.NewService(auditRepo, userRepo)
	auditHandler := audit.NewHandler(auditService)

	wsHandler := events.NewWSHandler(hub, j)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.GET("/ws/events", wsHandler.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterRoutes(protected)
			inventoryHandler.RegisterRoutes(protected)
			borrowHandler.RegisterRoutes(protected)
			deptHandler.RegisterRoutes(protected)
			userHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)

			writers := protected.Group("/")
			writers.Use(middleware.Writers())
			{
				inventoryHandler.RegisterWriterRoutes(writers)
			}

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				borrowHandler.RegisterAdminRoutes(admin)
				deptHandler.RegisterAdminRoutes(admin)
				userHandler.RegisterAdminRoutes(admin)
				auditHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
