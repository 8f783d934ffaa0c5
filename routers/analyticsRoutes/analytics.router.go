package analyticsRoutes

import (
	analyticsController "foyer/controllers/analytics"
	"foyer/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAnalyticsRoutes(app *fiber.App) {
	analyticsGroup := app.Group("/analytics")

	analyticsGroup.Get("/summary", middleware.JWTMiddleware, analyticsController.GetSummary)
	analyticsGroup.Get("/by-category", middleware.JWTMiddleware, analyticsController.GetByCategory)
	analyticsGroup.Get("/by-month", middleware.JWTMiddleware, analyticsController.GetByMonth)
	analyticsGroup.Get("/recent-activity", middleware.JWTMiddleware, analyticsController.GetRecentActivity)
}
