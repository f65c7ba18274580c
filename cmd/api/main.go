package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"headphone_store_server/config"
	"headphone_store_server/internal/ai"
	"headphone_store_server/internal/chatbot"
	"headphone_store_server/internal/handlers"
	"headphone_store_server/internal/middleware"
	"headphone_store_server/internal/services"
	"headphone_store_server/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Setup logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	logger.Info("configuration is ...", cfg)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run database migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatalf("Failed to run database migrations: %v", err)
	}

	// Setup Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(cfg.CORSAllowOrigins))
	router.Use(middleware.RequestID())

	// Initialize services
	brandService := services.NewBrandService(db)
	typeService := services.NewTypeService(db)
	headphoneService := services.NewHeadphoneService(db)
	chatService := services.NewChatService(db)

	// Initialize the assistant; without an endpoint the chat route answers 503
	var bot *chatbot.Bot
	if cfg.AIAPIURL != "" {
		aiClient, err := ai.NewClient(cfg.AIAPIURL, cfg.AIModel, cfg.AIAPIKey)
		if err != nil {
			logger.Fatalf("Failed to initialize AI client: %v", err)
		}
		searchClient := ai.NewSearchClient(cfg.TavilyAPIKey)
		bot = chatbot.NewBot(brandService, typeService, headphoneService, chatService, aiClient, searchClient, logger)
	} else {
		logger.Warn("AI_API_URL not set, chat endpoint disabled")
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, logger)
	brandHandler := handlers.NewBrandHandler(brandService, logger)
	typeHandler := handlers.NewTypeHandler(typeService, logger)
	headphoneHandler := handlers.NewHeadphoneHandler(headphoneService, logger)
	chatHandler := handlers.NewChatHandler(bot, chatService, brandService, typeService, headphoneService, logger)

	// Setup routes
	setupRoutes(router, healthHandler, brandHandler, typeHandler, headphoneHandler, chatHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

func setupRoutes(
	router *gin.Engine,
	healthHandler *handlers.HealthHandler,
	brandHandler *handlers.BrandHandler,
	typeHandler *handlers.TypeHandler,
	headphoneHandler *handlers.HeadphoneHandler,
	chatHandler *handlers.ChatHandler,
) {
	// Health check routes
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/health/ready", healthHandler.ReadinessCheck)
	router.GET("/health/live", healthHandler.LivenessCheck)

	// Brand routes
	brands := router.Group("/brands")
	{
		brands.GET("", brandHandler.ListBrands)
		brands.GET("/:slug", brandHandler.GetBrandBySlug)
		brands.GET("/id/:id", brandHandler.GetBrandByID)
		brands.POST("/create", brandHandler.CreateBrand)
		brands.POST("/create-bulk", brandHandler.CreateBrandsBulk)
		brands.PUT("/update/:id", brandHandler.UpdateBrand)
		brands.DELETE("/delete/:id", brandHandler.DeleteBrand)
	}

	// Type routes
	types := router.Group("/types")
	{
		types.GET("", typeHandler.ListTypes)
		types.GET("/:slug", typeHandler.GetTypeBySlug)
		types.GET("/id/:id", typeHandler.GetTypeByID)
		types.POST("/create", typeHandler.CreateType)
		types.POST("/create-bulk", typeHandler.CreateTypesBulk)
		types.PUT("/update/:id", typeHandler.UpdateType)
		types.DELETE("/delete/:id", typeHandler.DeleteType)
	}

	// Headphone routes
	headphones := router.Group("/headphones")
	{
		headphones.GET("", headphoneHandler.ListHeadphones)
		headphones.GET("/:slug", headphoneHandler.GetHeadphoneBySlug)
		headphones.GET("/id/:id", headphoneHandler.GetHeadphoneByID)
		headphones.POST("/create", headphoneHandler.CreateHeadphone)
		headphones.POST("/create-bulk", headphoneHandler.CreateHeadphonesBulk)
		headphones.PUT("/update/:id", headphoneHandler.UpdateHeadphone)
		headphones.DELETE("/delete/:id", headphoneHandler.DeleteHeadphone)
	}

	// Chat routes
	chat := router.Group("/chat")
	{
		chat.POST("", chatHandler.Chat)
		chat.GET("/db-info", chatHandler.DatabaseInfo)
		chat.GET("/sessions/recent", chatHandler.RecentSessions)
		chat.GET("/sessions/:id", chatHandler.GetSession)
		chat.DELETE("/sessions/:id", chatHandler.DeleteSession)
	}
}
