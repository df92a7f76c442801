package main

import (
	"fmt"
	"log"
	"os"

	"pathway-screen/internal/api/handlers"
	"pathway-screen/internal/api/middleware"
	"pathway-screen/internal/data"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// One shared BiGG client; downloads go through the in-memory cache when
	// ENABLE_BIGG_CACHE=true.
	bigg := data.NewBiGGClient(os.Getenv("BIGG_BASE_URL"))

	// Initialize handlers
	fbaHandler := handlers.NewFBAHandler(bigg)
	screenHandler := handlers.NewScreenHandler(bigg)
	rankHandler := handlers.NewRankHandler()
	catalogueHandler := handlers.NewCatalogueHandler(bigg)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/fba", fbaHandler.RunFBA)
		api.POST("/screen", screenHandler.RunScreen)
		api.POST("/rank", rankHandler.RankVariants)

		api.GET("/models", catalogueHandler.ListModels)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
