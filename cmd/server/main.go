package main

import (
	"log"
	"os"
	"strings"

	"mantri/internal/auth"
	"mantri/internal/database"
	"mantri/internal/handlers"
	"mantri/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Initialize Gin router
	router := gin.Default()

	// Configure trusted proxies
	router.SetTrustedProxies([]string{"127.0.0.1"})

	// CORS
	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" && origins != "*" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Basic routes
	router.GET("/", handlers.HomeHandler)
	router.GET("/health", handlers.HealthHandler)

	// Auth routes (no auth required)
	router.POST("/register", handlers.Register)
	router.POST("/login", handlers.Login)

	// Protected routes (auth required)
	protected := router.Group("")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/me", handlers.GetCurrentUser)
		protected.PUT("/users/profile", handlers.UpdateProfile)
		protected.PUT("/users/change-password", handlers.ChangePassword)
		protected.DELETE("/users/account", handlers.DeleteAccount)

		protected.POST("/gangs", handlers.CreateGang)
		protected.GET("/gangs/:gang_id", handlers.GetGang)
		protected.POST("/gangs/:gang_id/join", handlers.JoinGang)
		protected.POST("/gangs/:gang_id/leave", handlers.LeaveGang)
		protected.GET("/gangs/:gang_id/members", handlers.GetGangMembers)
		protected.DELETE("/gangs/:gang_id/members/:user_id", handlers.RemoveMember)
		protected.GET("/user/gangs", handlers.GetUserGangs)

		protected.POST("/gangs/:gang_id/save", handlers.SaveToday)
		protected.GET("/gangs/:gang_id/home", handlers.GetGangHome)
		protected.GET("/gangs/:gang_id/weekly-leaderboard", handlers.GetWeeklyLeaderboard)
		protected.GET("/gangs/:gang_id/monthly-leaderboard", handlers.GetMonthlyLeaderboard)

		protected.GET("/gangs/:gang_id/chat", handlers.GetChatMessages)
		protected.POST("/gangs/:gang_id/chat", handlers.SendChatMessage)
		protected.DELETE("/gangs/:gang_id/chat", handlers.ClearChat)
	}

	// Purge save records that fell out of every current view
	services.NewRetentionWorker().Start()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
