package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"property-listing-portal/internal/auth"
	"property-listing-portal/internal/config"
	"property-listing-portal/internal/database"
	"property-listing-portal/internal/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	configPath := getEnv("CONFIG_PATH", "config/app.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", configPath, err)
	}
	log.Printf("Loaded configuration (database: %s)", appConfig.Database.Type)

	if appConfig.Admin.Email == "" || appConfig.Admin.PasswordHash == "" {
		log.Fatal("Admin principal not configured (set ADMIN_EMAIL and ADMIN_PASSWORD_HASH)")
	}
	if appConfig.Auth.JWTSecret == "" {
		log.Fatal("JWT secret not configured (set JWT_SECRET)")
	}

	db, err := database.NewGormDB(appConfig.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	gate := auth.NewGate(appConfig.Admin, appConfig.Auth)
	authHandler := handlers.NewAuthHandler(gate)
	propertyHandler := handlers.NewPropertyHandler(db)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", healthCheck)
	r.POST("/login", authHandler.Login)

	// Public browsing endpoints
	r.GET("/properties", propertyHandler.List)
	r.GET("/properties/:id", propertyHandler.Get)

	// Mutating endpoints require a valid admin bearer token
	authed := r.Group("/", auth.RequireAuth(gate))
	{
		authed.POST("/properties", propertyHandler.Create)
		// Route alias kept for the existing admin frontend.
		authed.POST("/addproperties", propertyHandler.Create)
		authed.PUT("/properties/:id", propertyHandler.Update)
		authed.DELETE("/properties/:id", propertyHandler.Delete)
	}

	port := appConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}
