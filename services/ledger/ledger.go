// Package ledger is the owner-scoped side of the store: every read and write
// in here is keyed to the calling user. Household-wide reads live in the
// analytics package and must stay there.
package ledger

import (
	"errors"
	"time"

	"foyer/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNotFound covers both a missing row and a row owned by someone else, so
// callers can never tell the two apart.
var ErrNotFound = errors.New("record not found")

const dateLayout = "2006-01-02"

const selectWithCategory = "transactions.*, categories.name AS category_name, categories.icon AS category_icon, categories.color AS category_color"
const joinCategory = "LEFT JOIN categories ON categories.id = transactions.category_id"

// TransactionView is a transaction joined with its category display metadata.
// The metadata fields stay nil when the category no longer resolves.
type TransactionView struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	CategoryID    uint      `json:"category_id"`
	Amount        float64   `json:"amount"`
	Type          string    `json:"type"`
	Description   *string   `json:"description"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	CategoryName  *string   `json:"category_name"`
	CategoryIcon  *string   `json:"category_icon"`
	CategoryColor *string   `json:"category_color"`
}

type transactionRow struct {
	ID            uint
	UserID        uint
	CategoryID    uint
	Amount        float64
	Type          string
	Description   *string
	Date          datatypes.Date
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CategoryName  *string
	CategoryIcon  *string
	CategoryColor *string
}

func (r transactionRow) view() TransactionView {
	return TransactionView{
		ID:            r.ID,
		UserID:        r.UserID,
		CategoryID:    r.CategoryID,
		Amount:        r.Amount,
		Type:          r.Type,
		Description:   r.Description,
		Date:          time.Time(r.Date).Format(dateLayout),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		CategoryName:  r.CategoryName,
		CategoryIcon:  r.CategoryIcon,
		CategoryColor: r.CategoryColor,
	}
}

// ListFilters are AND-combined; zero values mean the filter is absent.
type ListFilters struct {
	Page       int
	Limit      int
	Type       string
	CategoryID uint
	DateFrom   string
	DateTo     string
}

// ListResult is a page of transactions. Total is the full matching count,
// independent of the page window.
type ListResult struct {
	Items []TransactionView `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// TransactionInput is the payload for creating a transaction.
type TransactionInput struct {
	Amount      float64
	Type        string
	CategoryID  uint
	Description *string
	Date        string // YYYY-MM-DD, validated upstream
}

// TransactionPatch is an explicit partial update: only non-nil fields are
// written. An all-nil patch is a no-op success.
type TransactionPatch struct {
	Amount      *float64
	Type        *string
	CategoryID  *uint
	Description *string
	Date        *string
}

// List returns the owner's transactions matching the filters, most recent
// first (date, then creation time).
func List(db *gorm.DB, ownerID uint, filters ListFilters) (*ListResult, error) {
	page := filters.Page
	limit := filters.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := db.Model(&models.Transaction{}).Where("transactions.user_id = ?", ownerID)

	if filters.Type != "" {
		query = query.Where("transactions.type = ?", filters.Type)
	}
	if filters.CategoryID != 0 {
		query = query.Where("transactions.category_id = ?", filters.CategoryID)
	}
	// Bind date bounds as midnight times so inclusive comparison against the
	// date column behaves the same on every driver.
	if filters.DateFrom != "" {
		from, err := time.Parse(dateLayout, filters.DateFrom)
		if err != nil {
			return nil, err
		}
		query = query.Where("transactions.date >= ?", from)
	}
	if filters.DateTo != "" {
		to, err := time.Parse(dateLayout, filters.DateTo)
		if err != nil {
			return nil, err
		}
		query = query.Where("transactions.date <= ?", to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []transactionRow
	err := query.
		Select(selectWithCategory).
		Joins(joinCategory).
		Order("transactions.date DESC, transactions.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]TransactionView, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.view())
	}

	return &ListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// GetByID returns a single transaction scoped to its owner.
func GetByID(db *gorm.DB, id, ownerID uint) (*TransactionView, error) {
	var row transactionRow
	err := db.Model(&models.Transaction{}).
		Select(selectWithCategory).
		Joins(joinCategory).
		Where("transactions.id = ? AND transactions.user_id = ?", id, ownerID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	view := row.view()
	return &view, nil
}

// Create inserts a transaction and re-fetches it through GetByID so the
// response always reflects committed, joined state.
func Create(db *gorm.DB, ownerID uint, input TransactionInput) (*TransactionView, error) {
	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, err
	}

	transaction := models.Transaction{
		UserID:      ownerID,
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Type:        input.Type,
		Description: input.Description,
		Date:        datatypes.Date(date),
	}

	if err := db.Create(&transaction).Error; err != nil {
		return nil, err
	}

	return GetByID(db, transaction.ID, ownerID)
}

// Update applies the present patch fields to the owner's transaction and
// refreshes the modification timestamp. An empty patch returns the current
// record unchanged.
func Update(db *gorm.DB, id, ownerID uint, patch TransactionPatch) (*TransactionView, error) {
	updates := map[string]interface{}{}

	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.Type != nil {
		updates["type"] = *patch.Type
	}
	if patch.CategoryID != nil {
		updates["category_id"] = *patch.CategoryID
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Date != nil {
		date, err := time.Parse(dateLayout, *patch.Date)
		if err != nil {
			return nil, err
		}
		updates["date"] = datatypes.Date(date)
	}

	if len(updates) == 0 {
		return GetByID(db, id, ownerID)
	}

	result := db.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return GetByID(db, id, ownerID)
}

// Delete hard-deletes the owner's transaction and reports whether a row was
// actually removed.
func Delete(db *gorm.DB, id, ownerID uint) (bool, error) {
	result := db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Transaction{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
