package main

import (
	"log"

	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/controllers"
	"github.com/campusride/CampusRide/routes"
	"github.com/campusride/CampusRide/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Redis is optional; without it the wallet and history caches are off
	if err := config.InitRedis(); err != nil {
		utils.LogError("Redis unavailable, caching disabled: %v", err)
	}

	// Seed the platform account, default rates and system users
	if err := controllers.EnsureDefaultData(config.DB); err != nil {
		utils.LogError("Failed to seed default data: %v", err)
		log.Fatal("Failed to seed default data:", err)
	}

	// Resolve the platform account once for the settlement engines
	if err := controllers.InitPlatformAccount(config.DB); err != nil {
		utils.LogError("Failed to resolve platform account: %v", err)
		log.Fatal("Failed to resolve platform account:", err)
	}

	// Wire the payment verification client
	controllers.InitPaymentVerifier(utils.NewPaystackClient())

	// Set up router
	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
