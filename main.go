package main

import (
	"time"

	"foyer/config"
	"foyer/database"
	analyticsRoutes "foyer/routers/analyticsRoutes"
	authRoutes "foyer/routers/authRoutes"
	categoryRoutes "foyer/routers/categoryRoutes"
	transactionRoutes "foyer/routers/transactionRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Liveness probe, unauthenticated
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	authRoutes.SetupAuthRoutes(app)
	transactionRoutes.SetupTransactionRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	analyticsRoutes.SetupAnalyticsRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
