package database

import (
	"log"
	"os"

	"foyer/config"
	"foyer/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// defaultCategories are the shared categories every household starts with.
var defaultCategories = []models.Category{
	{Name: "Alimentation", Icon: "restaurant", Color: "#FF6384", Type: models.CategoryTypeExpense},
	{Name: "Transport", Icon: "directions-car", Color: "#36A2EB", Type: models.CategoryTypeExpense},
	{Name: "Logement", Icon: "home", Color: "#FFCE56", Type: models.CategoryTypeExpense},
	{Name: "Santé", Icon: "local-hospital", Color: "#4BC0C0", Type: models.CategoryTypeExpense},
	{Name: "Shopping", Icon: "shopping-bag", Color: "#9966FF", Type: models.CategoryTypeExpense},
	{Name: "Loisirs", Icon: "sports-esports", Color: "#FF9F40", Type: models.CategoryTypeExpense},
	{Name: "Abonnements", Icon: "subscriptions", Color: "#FF6384", Type: models.CategoryTypeExpense},
	{Name: "Éducation", Icon: "school", Color: "#36A2EB", Type: models.CategoryTypeExpense},
	{Name: "Restaurants", Icon: "local-dining", Color: "#FFCE56", Type: models.CategoryTypeExpense},
	{Name: "Voyages", Icon: "flight", Color: "#4BC0C0", Type: models.CategoryTypeExpense},
	{Name: "Autres dépenses", Icon: "more-horiz", Color: "#9E9E9E", Type: models.CategoryTypeExpense},
	{Name: "Salaire", Icon: "work", Color: "#4CAF50", Type: models.CategoryTypeIncome},
	{Name: "Freelance", Icon: "laptop", Color: "#66BB6A", Type: models.CategoryTypeIncome},
	{Name: "Investissements", Icon: "trending-up", Color: "#26A69A", Type: models.CategoryTypeIncome},
	{Name: "Cadeaux", Icon: "card-giftcard", Color: "#AB47BC", Type: models.CategoryTypeIncome},
	{Name: "Remboursements", Icon: "replay", Color: "#42A5F5", Type: models.CategoryTypeIncome},
	{Name: "Autres revenus", Icon: "attach-money", Color: "#8BC34A", Type: models.CategoryTypeIncome},
}

// SeedDefaults creates the two household users and the shared default
// categories. It is idempotent: a database with any user is left untouched.
func SeedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Database already seeded, skipping.")
		return nil
	}

	users := []struct {
		username    string
		password    string
		displayName string
	}{
		{seedEnv("USER1_USERNAME", "user1"), seedEnv("USER1_PASSWORD", "password123"), seedEnv("USER1_NAME", "Utilisateur 1")},
		{seedEnv("USER2_USERNAME", "user2"), seedEnv("USER2_PASSWORD", "password123"), seedEnv("USER2_NAME", "Utilisateur 2")},
	}

	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), config.AppConfig.SaltRound)
		if err != nil {
			return err
		}
		user := models.User{
			Username:    u.username,
			Password:    string(hashed),
			DisplayName: u.displayName,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}
	log.Printf("Created %d household users.", len(users))

	for _, cat := range defaultCategories {
		record := cat
		record.IsDefault = true
		record.UserID = nil
		if err := db.Create(&record).Error; err != nil {
			return err
		}
	}
	log.Printf("Created %d default categories.", len(defaultCategories))

	return nil
}

func seedEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
