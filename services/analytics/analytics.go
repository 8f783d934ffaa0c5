// Package analytics computes read-only aggregations over the full household
// ledger. Unlike the ledger package, nothing in here filters by owner: the
// dashboards intentionally span every household member. Keep the two sides
// separate.
package analytics

import (
	"sort"
	"time"

	"foyer/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Summary is the income/expense balance over an optional date window.
type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// Contributor is one household member's share of a category bucket.
type Contributor struct {
	UserID      uint    `json:"user_id"`
	DisplayName *string `json:"display_name"`
	Total       float64 `json:"total"`
}

// CategoryBreakdown is one category bucket with its per-member split. The
// display fields stay nil when the category row no longer resolves.
type CategoryBreakdown struct {
	ID           uint          `json:"id"`
	Name         *string       `json:"name"`
	Icon         *string       `json:"icon"`
	Color        *string       `json:"color"`
	Total        float64       `json:"total"`
	Count        int64         `json:"count"`
	Contributors []Contributor `json:"contributors"`
}

// MonthActivity is one month of the sparse yearly series.
type MonthActivity struct {
	Month   string  `json:"month"` // YYYY-MM
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// ActivityItem is a recent transaction with category and member labels.
type ActivityItem struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	CategoryID      uint      `json:"category_id"`
	Amount          float64   `json:"amount"`
	Type            string    `json:"type"`
	Description     *string   `json:"description"`
	Date            string    `json:"date"`
	CreatedAt       time.Time `json:"created_at"`
	CategoryName    *string   `json:"category_name"`
	CategoryIcon    *string   `json:"category_icon"`
	CategoryColor   *string   `json:"category_color"`
	UserDisplayName *string   `json:"user_display_name"`
}

// dateWindow applies the optional inclusive bounds. Bounds are bound as
// midnight times so comparison against the date column behaves the same on
// every driver.
func dateWindow(query *gorm.DB, dateFrom, dateTo string) (*gorm.DB, error) {
	if dateFrom != "" {
		from, err := time.Parse(dateLayout, dateFrom)
		if err != nil {
			return nil, err
		}
		query = query.Where("transactions.date >= ?", from)
	}
	if dateTo != "" {
		to, err := time.Parse(dateLayout, dateTo)
		if err != nil {
			return nil, err
		}
		query = query.Where("transactions.date <= ?", to)
	}
	return query, nil
}

func sumByType(db *gorm.DB, txType, dateFrom, dateTo string) (float64, error) {
	query, err := dateWindow(db.Model(&models.Transaction{}), dateFrom, dateTo)
	if err != nil {
		return 0, err
	}
	query = query.Where("transactions.type = ?", txType)

	var total float64
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// GetSummary sums income and expense over the optional inclusive date window.
// An empty window yields zeros, never an error. The two sums are separate
// queries; dashboards tolerate the sliver of drift between them.
func GetSummary(db *gorm.DB, dateFrom, dateTo string) (*Summary, error) {
	income, err := sumByType(db, models.TransactionTypeIncome, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	expense, err := sumByType(db, models.TransactionTypeExpense, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	return &Summary{Income: income, Expense: expense, Balance: income - expense}, nil
}

type contributorRow struct {
	CategoryID  uint
	UserID      uint
	DisplayName *string
	Total       float64
	Count       int64
}

// GetByCategory buckets matching transactions per category, with a ranked
// per-member split inside each bucket. One grouped query per (category,
// member) pair feeds the whole result; buckets are assembled in a single
// pass, never re-queried per category. Categories with no activity are
// omitted.
func GetByCategory(db *gorm.DB, txType, dateFrom, dateTo string) ([]CategoryBreakdown, error) {
	query, err := dateWindow(db.Model(&models.Transaction{}), dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	query = query.Where("transactions.type = ?", txType)

	var rows []contributorRow
	err = query.
		Select("transactions.category_id, transactions.user_id, users.display_name, SUM(transactions.amount) AS total, COUNT(transactions.id) AS count").
		Joins("LEFT JOIN users ON users.id = transactions.user_id").
		Group("transactions.category_id, transactions.user_id, users.display_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []CategoryBreakdown{}, nil
	}

	categoryIDs := make([]uint, 0, len(rows))
	seen := map[uint]bool{}
	for _, r := range rows {
		if !seen[r.CategoryID] {
			seen[r.CategoryID] = true
			categoryIDs = append(categoryIDs, r.CategoryID)
		}
	}

	var categories []models.Category
	if err := db.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
		return nil, err
	}
	metadata := make(map[uint]models.Category, len(categories))
	for _, c := range categories {
		metadata[c.ID] = c
	}

	// Fan the grouped rows out into category buckets.
	buckets := make(map[uint]*CategoryBreakdown, len(categoryIDs))
	for _, r := range rows {
		bucket, ok := buckets[r.CategoryID]
		if !ok {
			bucket = &CategoryBreakdown{ID: r.CategoryID}
			if c, found := metadata[r.CategoryID]; found {
				bucket.Name = &c.Name
				bucket.Icon = &c.Icon
				bucket.Color = &c.Color
			}
			buckets[r.CategoryID] = bucket
		}
		bucket.Total += r.Total
		bucket.Count += r.Count
		bucket.Contributors = append(bucket.Contributors, Contributor{
			UserID:      r.UserID,
			DisplayName: r.DisplayName,
			Total:       r.Total,
		})
	}

	result := make([]CategoryBreakdown, 0, len(buckets))
	for _, bucket := range buckets {
		sort.Slice(bucket.Contributors, func(i, j int) bool {
			a, b := bucket.Contributors[i], bucket.Contributors[j]
			if a.Total != b.Total {
				return a.Total > b.Total
			}
			return a.UserID < b.UserID
		})
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

type yearRow struct {
	Type   string
	Amount float64
	Date   datatypes.Date
}

// GetByMonth returns one row per month of the year that saw at least one
// transaction, ascending. Idle months are omitted; callers handle the sparse
// series.
func GetByMonth(db *gorm.DB, year int) ([]MonthActivity, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var rows []yearRow
	err := db.Model(&models.Transaction{}).
		Select("type, amount, date").
		Where("date >= ? AND date <= ?", start, end).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	months := map[string]*MonthActivity{}
	for _, r := range rows {
		month := time.Time(r.Date).Format("2006-01")
		activity, ok := months[month]
		if !ok {
			activity = &MonthActivity{Month: month}
			months[month] = activity
		}
		if r.Type == models.TransactionTypeIncome {
			activity.Income += r.Amount
		} else {
			activity.Expense += r.Amount
		}
	}

	result := make([]MonthActivity, 0, len(months))
	for _, activity := range months {
		result = append(result, *activity)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})

	return result, nil
}

type activityRow struct {
	ID              uint
	UserID          uint
	CategoryID      uint
	Amount          float64
	Type            string
	Description     *string
	Date            datatypes.Date
	CreatedAt       time.Time
	CategoryName    *string
	CategoryIcon    *string
	CategoryColor   *string
	UserDisplayName *string
}

// GetRecentActivity returns the household's latest transactions with category
// metadata and member labels.
func GetRecentActivity(db *gorm.DB, limit int) ([]ActivityItem, error) {
	if limit < 1 {
		limit = 5
	}

	var rows []activityRow
	err := db.Model(&models.Transaction{}).
		Select("transactions.*, categories.name AS category_name, categories.icon AS category_icon, categories.color AS category_color, users.display_name AS user_display_name").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Joins("LEFT JOIN users ON users.id = transactions.user_id").
		Order("transactions.date DESC, transactions.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]ActivityItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, ActivityItem{
			ID:              r.ID,
			UserID:          r.UserID,
			CategoryID:      r.CategoryID,
			Amount:          r.Amount,
			Type:            r.Type,
			Description:     r.Description,
			Date:            time.Time(r.Date).Format(dateLayout),
			CreatedAt:       r.CreatedAt,
			CategoryName:    r.CategoryName,
			CategoryIcon:    r.CategoryIcon,
			CategoryColor:   r.CategoryColor,
			UserDisplayName: r.UserDisplayName,
		})
	}

	return items, nil
}
