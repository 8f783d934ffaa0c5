package analyticsController

import (
	"log"
	"time"

	"foyer/database"
	"foyer/middleware"
	"foyer/models"
	"foyer/services/analytics"

	"github.com/gofiber/fiber/v2"
)

// GetSummary returns the household income/expense balance for the optional
// date window.
func GetSummary(c *fiber.Ctx) error {
	summary, err := analytics.GetSummary(database.Database.Db, c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		log.Printf("Error computing summary: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute summary!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Summary computed!", summary)
}

// GetByCategory returns the per-category breakdown with per-member splits.
func GetByCategory(c *fiber.Ctx) error {
	txType := c.Query("type", models.TransactionTypeExpense)

	breakdown, err := analytics.GetByCategory(database.Database.Db, txType, c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		log.Printf("Error computing category breakdown: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute category breakdown!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category breakdown computed!", breakdown)
}

// GetByMonth returns the sparse monthly series for a year.
func GetByMonth(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().Year())

	series, err := analytics.GetByMonth(database.Database.Db, year)
	if err != nil {
		log.Printf("Error computing monthly series: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute monthly series!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Monthly series computed!", series)
}

// GetRecentActivity returns the household's latest transactions.
func GetRecentActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)

	items, err := analytics.GetRecentActivity(database.Database.Db, limit)
	if err != nil {
		log.Printf("Error fetching recent activity: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch recent activity!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recent activity fetched!", items)
}
