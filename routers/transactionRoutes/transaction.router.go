package transactionRoutes

import (
	transactionController "foyer/controllers/transaction"
	"foyer/middleware"
	transactionValidator "foyer/validators/transaction"

	"github.com/gofiber/fiber/v2"
)

func SetupTransactionRoutes(app *fiber.App) {
	transactionGroup := app.Group("/transactions")

	transactionGroup.Get("/", middleware.JWTMiddleware, transactionController.ListTransactions)
	transactionGroup.Post("/", transactionValidator.CreateTransaction(), middleware.JWTMiddleware, transactionController.CreateTransaction)
	transactionGroup.Get("/:id", middleware.JWTMiddleware, transactionController.GetTransaction)
	transactionGroup.Put("/:id", transactionValidator.UpdateTransaction(), middleware.JWTMiddleware, transactionController.UpdateTransaction)
	transactionGroup.Delete("/:id", middleware.JWTMiddleware, transactionController.DeleteTransaction)
}
