package transactionController

import (
	"errors"
	"log"

	"foyer/database"
	"foyer/middleware"
	"foyer/services/ledger"

	transactionValidator "foyer/validators/transaction"

	"github.com/gofiber/fiber/v2"
)

// ListTransactions returns the caller's transactions, filtered and paginated.
func ListTransactions(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	categoryID := c.QueryInt("category_id", 0)
	if categoryID < 0 {
		categoryID = 0
	}

	filters := ledger.ListFilters{
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 20),
		Type:       c.Query("type"),
		CategoryID: uint(categoryID),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
	}

	result, err := ledger.List(database.Database.Db, userId, filters)
	if err != nil {
		log.Printf("Error listing transactions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched!", result)
}

// GetTransaction returns one of the caller's transactions.
func GetTransaction(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}

	transaction, err := ledger.GetByID(database.Database.Db, uint(id), userId)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
		}
		log.Printf("Error fetching transaction %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transaction!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction fetched!", transaction)
}

// CreateTransaction records a new transaction for the caller.
func CreateTransaction(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedTransaction").(*transactionValidator.CreateTransactionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	transaction, err := ledger.Create(database.Database.Db, userId, ledger.TransactionInput{
		Amount:      reqData.Amount,
		Type:        reqData.Type,
		CategoryID:  reqData.CategoryID,
		Description: reqData.Description,
		Date:        reqData.Date,
	})
	if err != nil {
		log.Printf("Error creating transaction: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create transaction!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Transaction created.", transaction)
}

// UpdateTransaction applies a partial update to one of the caller's
// transactions. An empty body is a no-op success.
func UpdateTransaction(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}

	reqData, ok := c.Locals("validatedTransactionUpdate").(*transactionValidator.UpdateTransactionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	transaction, err := ledger.Update(database.Database.Db, uint(id), userId, ledger.TransactionPatch{
		Amount:      reqData.Amount,
		Type:        reqData.Type,
		CategoryID:  reqData.CategoryID,
		Description: reqData.Description,
		Date:        reqData.Date,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
		}
		log.Printf("Error updating transaction %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update transaction!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction updated.", transaction)
}

// DeleteTransaction hard-deletes one of the caller's transactions.
func DeleteTransaction(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}

	deleted, err := ledger.Delete(database.Database.Db, uint(id), userId)
	if err != nil {
		log.Printf("Error deleting transaction %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete transaction!", nil)
	}
	if !deleted {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction deleted.", nil)
}
