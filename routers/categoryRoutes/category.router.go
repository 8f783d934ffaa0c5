package categoryRoutes

import (
	categoryController "foyer/controllers/category"
	"foyer/middleware"
	categoryValidator "foyer/validators/category"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app *fiber.App) {
	categoryGroup := app.Group("/categories")

	categoryGroup.Get("/", middleware.JWTMiddleware, categoryController.ListCategories)
	categoryGroup.Post("/", categoryValidator.CreateCategory(), middleware.JWTMiddleware, categoryController.CreateCategory)
	categoryGroup.Put("/:id", categoryValidator.UpdateCategory(), middleware.JWTMiddleware, categoryController.UpdateCategory)
	categoryGroup.Delete("/:id", middleware.JWTMiddleware, categoryController.DeleteCategory)
}
