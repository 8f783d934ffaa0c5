package categoryController

import (
	"errors"
	"log"

	"foyer/database"
	"foyer/middleware"
	"foyer/services/ledger"

	categoryValidator "foyer/validators/category"

	"github.com/gofiber/fiber/v2"
)

// ListCategories returns the caller's categories plus the shared defaults.
func ListCategories(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	categories, err := ledger.ListCategories(database.Database.Db, userId)
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched!", categories)
}

// CreateCategory records a new user-owned category.
func CreateCategory(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCategory").(*categoryValidator.CreateCategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	category, err := ledger.CreateCategory(database.Database.Db, userId, ledger.CategoryInput{
		Name:  reqData.Name,
		Icon:  reqData.Icon,
		Color: reqData.Color,
		Type:  reqData.Type,
	})
	if err != nil {
		log.Printf("Error creating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created.", category)
}

// UpdateCategory applies a partial update to one of the caller's categories.
func UpdateCategory(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	reqData, ok := c.Locals("validatedCategoryUpdate").(*categoryValidator.UpdateCategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	category, err := ledger.UpdateCategory(database.Database.Db, uint(id), userId, ledger.CategoryPatch{
		Name:  reqData.Name,
		Icon:  reqData.Icon,
		Color: reqData.Color,
		Type:  reqData.Type,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
		log.Printf("Error updating category %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated.", category)
}

// DeleteCategory removes one of the caller's categories. Shared defaults are
// never deletable, so they come back as not found here.
func DeleteCategory(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	deleted, err := ledger.DeleteCategory(database.Database.Db, uint(id), userId)
	if err != nil {
		log.Printf("Error deleting category %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}
	if !deleted {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found or not deletable!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted.", nil)
}
