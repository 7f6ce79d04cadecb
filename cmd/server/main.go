package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/api"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/db"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/logging"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/sheets"
	"github.com/Instituto-de-Embalagens/Sistema-Catalogo/internal/storage"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.SetOutput(os.Stdout)
	log.Println("Iniciando API do Catálogo...")

	// Initialize database connection (non-fatal; allow process to start for /live)
	database, err := db.NewDatabase()
	if err != nil {
		log.Printf("[WARN] Database initialization failed at startup: %v", err)
	}
	if database != nil {
		defer database.Close()
	}

	mirror := sheets.NewMirror()

	uploader, err := storage.NewUploader(context.Background())
	if err != nil {
		log.Printf("[WARN] File storage initialization failed: %v", err)
	}

	handler := api.NewHandler(database, mirror, uploader)
	router := setupRouter(handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

func setupRouter(handler *api.Handler) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(logging.JSONLogger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Health and readiness endpoints
	router.GET("/live", func(c *gin.Context) { c.Status(200) })
	router.GET("/ready", handler.Health)
	router.GET("/health", handler.Health)

	// Open endpoints
	auth := router.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
	}

	// Everything else requires a bearer token
	protected := router.Group("")
	protected.Use(api.AuthMiddleware())
	{
		packaging := protected.Group("/packaging")
		{
			packaging.GET("", handler.ListPackaging)
			packaging.POST("", handler.CreatePackaging)
			packaging.POST("/upload", handler.UploadPackagingFile)
			packaging.GET("/:id", handler.GetPackaging)
			packaging.PATCH("/:id", handler.UpdatePackaging)
			packaging.DELETE("/:id", handler.DeletePackaging)
		}

		locations := protected.Group("/locations")
		{
			locations.GET("", handler.ListLocations)
			locations.POST("", handler.CreateLocation)
			locations.GET("/:id", handler.GetLocation)
			locations.PATCH("/:id", handler.UpdateLocation)
			locations.DELETE("/:id", handler.DeleteLocation)
		}

		scenarios := protected.Group("/scenarios")
		{
			scenarios.GET("", handler.ListScenarios)
			scenarios.POST("", handler.CreateScenario)
			scenarios.GET("/:id", handler.GetScenario)
			scenarios.GET("/:id/packaging", handler.ListScenarioPackaging)
			scenarios.POST("/:id/packaging", handler.AddScenarioPackaging)
			scenarios.DELETE("/:id/packaging/:linkId", handler.RemoveScenarioPackaging)
		}

		users := protected.Group("/users")
		{
			users.GET("", handler.ListUsers)
			users.POST("", handler.CreateUser)
			users.GET("/me", handler.GetCurrentUser)
			users.GET("/:id", handler.GetUser)
			users.PATCH("/:id", handler.UpdateUser)
			users.DELETE("/:id", handler.DeleteUser)
		}
	}

	// Root endpoint for basic info
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "sistema-catalogo-api",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	return router
}

// corsMiddleware adds CORS headers so the dashboard can call the API from
// another origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
