package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	v1 "github.com/rowcast-simple/api/v1"
	"github.com/rowcast-simple/config"
	"github.com/rowcast-simple/database"
	"github.com/rowcast-simple/lib/messaging"
	"github.com/rowcast-simple/queue"
	"github.com/rowcast-simple/workers"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Initialize database
	database.Initialize()

	// Initialize the message queue and start its single consumer
	queue.Messages = queue.New(queue.MessagesQueue, 64)
	enabled := config.GetEnvBool("ENABLE_MESSAGING", false)
	worker := workers.NewMessageWorker(newProvider(), enabled)
	queue.Messages.Consume(worker.Process)
	if !enabled {
		log.Println("⚠️ Message sending is disabled, dispatch jobs will only be logged")
	}

	// Initialize router
	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	// Register API routes
	v1.RegisterRoutes(router.Group("/api/v1"))

	// Get port from environment or use default
	port := config.GetEnv("PORT", "8080")

	// Start server
	log.Printf("🚀 Rowcast starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newProvider selects the notification provider from the environment.
// FCM is the default; pushbullet is kept for devices registered against
// the legacy texts API.
func newProvider() messaging.Provider {
	switch config.GetEnv("MESSAGING_PROVIDER", "fcm") {
	case "pushbullet":
		return messaging.NewPushBulletClient()
	default:
		return messaging.NewFCMClient(
			config.GetEnv("FCM_PROJECT_ID", ""),
			config.GetEnv("FCM_ACCESS_TOKEN", ""),
		)
	}
}
