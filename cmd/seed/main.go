package main

import (
	"shop_system/internal/config" // Custom import path (Config)
	"shop_system/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Main entry point for seeding the database
func main() {
	cfg := config.LoadConfig() // Load configuration

	conn, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Fatal error if connection fails
	}

	// Seed in dependency order: admin, categories, then products
	if err := db.SeedAdmin(conn); err != nil {
		logrus.Fatalf("admin seeding failed: %v", err)
	}
	if err := db.SeedCategories(conn); err != nil {
		logrus.Fatalf("category seeding failed: %v", err)
	}
	if err := db.SeedProducts(conn); err != nil {
		logrus.Fatalf("product seeding failed: %v", err)
	}
	logrus.Info("Seeding completed.") // Log successful seeding
}
