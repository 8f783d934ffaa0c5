package ledger

import (
	"errors"

	"foyer/models"

	"gorm.io/gorm"
)

// CategoryInput is the payload for creating a category. User-created
// categories are never defaults.
type CategoryInput struct {
	Name  string
	Icon  string
	Color string
	Type  string
}

// CategoryPatch is an explicit partial update for an owned category.
type CategoryPatch struct {
	Name  *string
	Icon  *string
	Color *string
	Type  *string
}

// ListCategories returns the user's own categories plus the shared defaults,
// defaults first, then alphabetical.
func ListCategories(db *gorm.DB, ownerID uint) ([]models.Category, error) {
	var categories []models.Category
	err := db.
		Where("user_id = ? OR user_id IS NULL", ownerID).
		Order("is_default DESC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory inserts a user-owned category.
func CreateCategory(db *gorm.DB, ownerID uint, input CategoryInput) (*models.Category, error) {
	category := models.Category{
		UserID:    &ownerID,
		Name:      input.Name,
		Icon:      input.Icon,
		Color:     input.Color,
		Type:      input.Type,
		IsDefault: false,
	}
	if err := db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory applies the present patch fields to an owned category. An
// empty patch returns the current record unchanged. Shared defaults have no
// owner and therefore never match.
func UpdateCategory(db *gorm.DB, id, ownerID uint, patch CategoryPatch) (*models.Category, error) {
	updates := map[string]interface{}{}

	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Icon != nil {
		updates["icon"] = *patch.Icon
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.Type != nil {
		updates["type"] = *patch.Type
	}

	if len(updates) == 0 {
		var category models.Category
		err := db.Where("id = ? AND user_id = ?", id, ownerID).Take(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return &category, nil
	}

	result := db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var category models.Category
	if err := db.Where("id = ? AND user_id = ?", id, ownerID).Take(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes an owned, non-default category and reports whether a
// row was removed. Default categories are exempt from deletion regardless of
// caller.
func DeleteCategory(db *gorm.DB, id, ownerID uint) (bool, error) {
	result := db.
		Where("id = ? AND user_id = ? AND is_default = ?", id, ownerID, false).
		Delete(&models.Category{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
