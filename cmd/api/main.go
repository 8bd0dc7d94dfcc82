package main

import (
	"log"
	"os"

	_ "brewhouse/api/swagger" // swagger docs
	"brewhouse/internal/database"
	"brewhouse/internal/handler"
	"brewhouse/internal/middleware"
	"brewhouse/internal/repository"
	"brewhouse/internal/service"
	"brewhouse/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// @title           Brewhouse Back Office API
// @version         1.0
// @description     Role-gated back office for a small brewery: orders, ledger, loans, catalog, and financial reporting.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dsn := "postgres://" + envOr("DB_USER", "postgres") + ":" + envOr("DB_PASSWORD", "postgres") +
		"@" + envOr("DB_HOST", "localhost") + ":" + envOr("DB_PORT", "5432") +
		"/" + envOr("DB_NAME", "brewhouse") + "?sslmode=" + envOr("DB_SSLMODE", "disable")

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	if err := database.SeedCategories(db); err != nil {
		log.Fatalf("Category seed failed: %v", err)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	productRepo := repository.NewProductRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	paystubRepo := repository.NewPaystubRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	employeeService := service.NewEmployeeService(employeeRepo, paystubRepo, auditRepo, txManager)
	orderService := service.NewOrderService(orderRepo, productRepo, employeeRepo, auditRepo, txManager, wsHub)
	ledgerService := service.NewLedgerService(transactionRepo, categoryRepo, loanRepo, auditRepo, txManager)
	loanService := service.NewLoanService(loanRepo, transactionRepo, auditRepo, txManager)
	catalogService := service.NewCatalogService(productRepo, recipeRepo, auditRepo, txManager)
	inventoryService := service.NewInventoryService(inventoryRepo, auditRepo, txManager)
	reportService := service.NewReportService(transactionRepo, categoryRepo, loanRepo, inventoryRepo)
	forecastService := service.NewForecastService(transactionRepo, categoryRepo, orderRepo)
	dashboardService := service.NewDashboardService(orderRepo, employeeRepo, productRepo, transactionRepo, categoryRepo, loanRepo)
	auditService := service.NewAuditService(auditRepo)

	businessInfo := handler.BusinessInfo{
		Name:            envOr("BUSINESS_NAME", "Brewhouse"),
		Tagline:         envOr("BUSINESS_TAGLINE", "Small-batch beer, made to order"),
		Contact:         envOr("BUSINESS_CONTACT", ""),
		DeliveryMethods: []string{"Pickup", "Delivery"},
	}

	// Initialize Handlers
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	orderHandler := handler.NewOrderHandler(orderService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	loanHandler := handler.NewLoanHandler(loanService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	reportHandler := handler.NewReportHandler(reportService, forecastService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	auditHandler := handler.NewAuditHandler(auditService)
	publicHandler := handler.NewPublicHandler(orderService, catalogService, businessInfo)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	root := router.Group("")
	employeeHandler.RegisterRoutes(root)
	orderHandler.RegisterRoutes(root)
	ledgerHandler.RegisterRoutes(root)
	loanHandler.RegisterRoutes(root)
	catalogHandler.RegisterRoutes(root)
	inventoryHandler.RegisterRoutes(root)
	reportHandler.RegisterRoutes(root)
	dashboardHandler.RegisterRoutes(root)
	auditHandler.RegisterRoutes(root)
	publicHandler.RegisterRoutes(root)

	port := envOr("PORT", "8080")
	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
