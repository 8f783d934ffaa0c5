package ledger

import (
	"testing"
	"time"

	"foyer/models"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB opens a named in-memory SQLite database with the schema applied.
// Shared cache keeps pooled connections on the same database.
func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Transaction{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, displayName string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "x", DisplayName: displayName}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createCategory(t *testing.T, db *gorm.DB, ownerID *uint, name, catType string, isDefault bool) models.Category {
	t.Helper()
	category := models.Category{
		UserID:    ownerID,
		Name:      name,
		Icon:      "restaurant",
		Color:     "#FF6384",
		Type:      catType,
		IsDefault: isDefault,
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustDate(t *testing.T, value string) datatypes.Date {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return datatypes.Date(parsed)
}

func createTransaction(t *testing.T, db *gorm.DB, userID, categoryID uint, amount float64, txType, date string) models.Transaction {
	t.Helper()
	transaction := models.Transaction{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Type:       txType,
		Date:       mustDate(t, date),
	}
	if err := db.Create(&transaction).Error; err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return transaction
}

func TestList_PaginationAndTotal(t *testing.T) {
	db := openTestDB(t, "ledger_pagination")
	user := createUser(t, db, "user1", "Utilisateur 1")
	category := createCategory(t, db, nil, "Alimentation", models.CategoryTypeExpense, true)

	// 50 rows, one per day; the highest amount carries the newest date.
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 50; i++ {
		createTransaction(t, db, user.ID, category.ID, float64(i), models.TransactionTypeExpense,
			base.AddDate(0, 0, i).Format("2006-01-02"))
	}

	result, err := List(db, user.ID, ListFilters{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 50 {
		t.Fatalf("total = %d, want 50", result.Total)
	}
	if result.Page != 3 || result.Limit != 10 {
		t.Fatalf("page/limit echo = %d/%d, want 3/10", result.Page, result.Limit)
	}
	if len(result.Items) != 10 {
		t.Fatalf("len(items) = %d, want 10", len(result.Items))
	}
	// Page 3 starts at the 21st newest row: amounts 30 down to 21.
	if result.Items[0].Amount != 30 || result.Items[9].Amount != 21 {
		t.Fatalf("page window = %.0f..%.0f, want 30..21", result.Items[0].Amount, result.Items[9].Amount)
	}

	// Total is independent of the page window.
	last, err := List(db, user.ID, ListFilters{Page: 6, Limit: 10})
	if err != nil {
		t.Fatalf("list last page: %v", err)
	}
	if last.Total != 50 || len(last.Items) != 0 {
		t.Fatalf("past-the-end page: total=%d len=%d, want 50/0", last.Total, len(last.Items))
	}
}

func TestList_DefaultsAndOrdering(t *testing.T) {
	db := openTestDB(t, "ledger_ordering")
	user := createUser(t, db, "user1", "Utilisateur 1")
	category := createCategory(t, db, nil, "Transport", models.CategoryTypeExpense, true)

	// Same date, distinct creation times: newest creation wins the tie.
	older := models.Transaction{
		UserID: user.ID, CategoryID: category.ID, Amount: 10,
		Type: models.TransactionTypeExpense, Date: mustDate(t, "2026-03-10"),
		CreatedAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
	}
	newer := models.Transaction{
		UserID: user.ID, CategoryID: category.ID, Amount: 20,
		Type: models.TransactionTypeExpense, Date: mustDate(t, "2026-03-10"),
		CreatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&older).Error; err != nil {
		t.Fatalf("create older: %v", err)
	}
	if err := db.Create(&newer).Error; err != nil {
		t.Fatalf("create newer: %v", err)
	}
	createTransaction(t, db, user.ID, category.ID, 30, models.TransactionTypeExpense, "2026-03-11")

	result, err := List(db, user.ID, ListFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Page != 1 || result.Limit != 20 {
		t.Fatalf("defaults = page %d limit %d, want 1/20", result.Page, result.Limit)
	}
	if len(result.Items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(result.Items))
	}
	if result.Items[0].Amount != 30 || result.Items[1].Amount != 20 || result.Items[2].Amount != 10 {
		t.Fatalf("order = %.0f,%.0f,%.0f, want 30,20,10",
			result.Items[0].Amount, result.Items[1].Amount, result.Items[2].Amount)
	}
}

func TestList_FiltersAndCombined(t *testing.T) {
	db := openTestDB(t, "ledger_filters")
	user := createUser(t, db, "user1", "Utilisateur 1")
	food := createCategory(t, db, nil, "Alimentation", models.CategoryTypeExpense, true)
	salary := createCategory(t, db, nil, "Salaire", models.CategoryTypeIncome, true)

	createTransaction(t, db, user.ID, food.ID, 50, models.TransactionTypeExpense, "2026-01-10")
	createTransaction(t, db, user.ID, food.ID, 30, models.TransactionTypeExpense, "2026-01-31")
	createTransaction(t, db, user.ID, food.ID, 25, models.TransactionTypeExpense, "2026-02-05")
	createTransaction(t, db, user.ID, salary.ID, 2000, models.TransactionTypeIncome, "2026-01-28")

	result, err := List(db, user.ID, ListFilters{
		Type:       models.TransactionTypeExpense,
		CategoryID: food.ID,
		DateFrom:   "2026-01-01",
		DateTo:     "2026-01-31",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 2 || len(result.Items) != 2 {
		t.Fatalf("filtered total=%d len=%d, want 2/2", result.Total, len(result.Items))
	}
	// date_to is inclusive: the Jan 31 row must be in, and newest-first.
	if result.Items[0].Amount != 30 || result.Items[1].Amount != 50 {
		t.Fatalf("filtered order = %.0f,%.0f, want 30,50", result.Items[0].Amount, result.Items[1].Amount)
	}

	byType, err := List(db, user.ID, ListFilters{Type: models.TransactionTypeIncome})
	if err != nil {
		t.Fatalf("list income: %v", err)
	}
	if byType.Total != 1 || byType.Items[0].Amount != 2000 {
		t.Fatalf("income filter total=%d, want 1", byType.Total)
	}
}

func TestGetByID_OwnershipIsolation(t *testing.T) {
	db := openTestDB(t, "ledger_ownership")
	owner := createUser(t, db, "user1", "Utilisateur 1")
	other := createUser(t, db, "user2", "Utilisateur 2")
	category := createCategory(t, db, nil, "Alimentation", models.CategoryTypeExpense, true)
	transaction := createTransaction(t, db, owner.ID, category.ID, 42, models.TransactionTypeExpense, "2026-01-15")

	if _, err := GetByID(db, transaction.ID, owner.ID); err != nil {
		t.Fatalf("owner read: %v", err)
	}

	// Foreign owner and absent id must be indistinguishable.
	_, foreignErr := GetByID(db, transaction.ID, other.ID)
	_, absentErr := GetByID(db, 9999, owner.ID)
	if foreignErr != ErrNotFound {
		t.Fatalf("foreign owner err = %v, want ErrNotFound", foreignErr)
	}
	if absentErr != ErrNotFound {
		t.Fatalf("absent id err = %v, want ErrNotFound", absentErr)
	}
}

func TestCreate_RoundTripWithJoinedMetadata(t *testing.T) {
	db := openTestDB(t, "ledger_roundtrip")
	user := createUser(t, db, "user1", "Utilisateur 1")
	category := createCategory(t, db, nil, "Alimentation", models.CategoryTypeExpense, true)

	description := "courses de la semaine"
	created, err := Create(db, user.ID, TransactionInput{
		Amount:      19.99,
		Type:        models.TransactionTypeExpense,
		CategoryID:  category.ID,
		Description: &description,
		Date:        "2026-01-15",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.CategoryName == nil || *created.CategoryName != "Alimentation" {
		t.Fatalf("category name not joined: %+v", created)
	}
	if created.CategoryIcon == nil || created.CategoryColor == nil {
		t.Fatalf("category metadata missing: %+v", created)
	}

	fetched, err := GetByID(db, created.ID, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Amount != 19.99 || fetched.Type != models.TransactionTypeExpense ||
		fetched.CategoryID != category.ID || fetched.Date != "2026-01-15" {
		t.Fatalf("round-trip mismatch: %+v", fetched)
	}
	if fetched.Description == nil || *fetched.Description != description {
		t.Fatalf("description mismatch: %+v", fetched.Description)
	}
}

func TestGetByID_UnresolvableCategoryYieldsNilMetadata(t *testing.T) {
	db := openTestDB(t, "ledger_nullmeta")
	user := createUser(t, db, "user1", "Utilisateur 1")
	category := createCategory(t, db, &user.ID, "Ponctuel", models.CategoryTypeExpense, false)
	transaction := createTransaction(t, db, user.ID, category.ID, 5, models.TransactionTypeExpense, "2026-01-15")

	if err := db.Delete(&models.Category{}, category.ID).Error; err != nil {
		t.Fatalf("delete category: %v", err)
	}

	fetched, err := GetByID(db, transaction.ID, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.CategoryName != nil || fetched.CategoryIcon != nil || fetched.CategoryColor != nil {
		t.Fatalf("expected nil category metadata, got %+v", fetched)
	}
}

func TestUpdate_EmptyPatchIsNoOp(t *testing.T) {
	db := openTestDB(t, "ledger_emptypatch")
	user := createUser(t, db, "user1", "Utilisateur 1")
	category := createCategory(t, db, nil, "Alimentation", models.CategoryTypeExpense, true)
	transaction := createTransaction(t, db, user.ID, category.ID, 42, models.TransactionTypeExpense, "2026-01-15")

	updated, err := Update(db, transaction.ID, user.ID, TransactionPatch{})
	if err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	if updated.Amount != 42 || updated.Date != "2026-01-15" || updated.Type != models.TransactionTypeExpense {
		t.Fatalf("no-op changed the record: %+v", updated)
	}
}

func TestUpdate_PartialFieldsAndScope(t *testing.T) {
	db := openTestDB(t, "ledger_patch")
	user := createUser(t, db, "user1", "Utilisateur 1")
	other := createUser(t, db, "user2", "Utilisateur 2")
	category := createCategory(t, db, nil, "Alimentation", models.CategoryTypeExpense, true)
	transaction := createTransaction(t, db, user.ID, category.ID, 42, models.TransactionTypeExpense, "2026-01-15")

	amount := 55.5
	date := "2026-01-20"
	updated, err := Update(db, transaction.ID, user.ID, TransactionPatch{Amount: &amount, Date: &date})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount != 55.5 || updated.Date != "2026-01-20" {
		t.Fatalf("patched fields not applied: %+v", updated)
	}
	if updated.Type != models.TransactionTypeExpense || updated.CategoryID != category.ID {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	// Owner mismatch behaves like a missing row.
	if _, err := Update(db, transaction.ID, other.ID, TransactionPatch{Amount: &amount}); err != ErrNotFound {
		t.Fatalf("foreign update err = %v, want ErrNotFound", err)
	}
	if _, err := Update(db, 9999, user.ID, TransactionPatch{Amount: &amount}); err != ErrNotFound {
		t.Fatalf("absent update err = %v, want ErrNotFound", err)
	}
}

func TestDelete_ScopedHardDelete(t *testing.T) {
	db := openTestDB(t, "ledger_delete")
	user := createUser(t, db, "user1", "Utilisateur 1")
	other := createUser(t, db, "user2", "Utilisateur 2")
	category := createCategory(t, db, nil, "Alimentation", models.CategoryTypeExpense, true)
	transaction := createTransaction(t, db, user.ID, category.ID, 42, models.TransactionTypeExpense, "2026-01-15")

	deleted, err := Delete(db, transaction.ID, other.ID)
	if err != nil {
		t.Fatalf("foreign delete: %v", err)
	}
	if deleted {
		t.Fatal("foreign delete removed a row")
	}

	deleted, err = Delete(db, transaction.ID, user.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("owner delete removed nothing")
	}

	// Second delete finds nothing; the row is gone for real.
	deleted, err = Delete(db, transaction.ID, user.ID)
	if err != nil || deleted {
		t.Fatalf("repeat delete = %v/%v, want false/nil", deleted, err)
	}
	if _, err := GetByID(db, transaction.ID, user.ID); err != ErrNotFound {
		t.Fatalf("deleted row still readable: %v", err)
	}
}
