// Command seed prepares a fresh database: runs migrations and inserts the
// household users and default categories. Safe to run twice.
package main

import (
	"log"

	"foyer/config"
	"foyer/database"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	if err := database.SeedDefaults(database.Database.Db); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Println("Seed completed successfully.")
}
