package db

import (
	"shop_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// SeedAdmin creates the default admin account unless it already exists
func SeedAdmin(db *gorm.DB) error {
	var existing domain.User // Check for an existing admin
	if err := db.Where("email = ?", "admin@example.com").First(&existing).Error; err == nil {
		logrus.Info("Admin user already exists, skipping") // Nothing to do
		return nil
	}
	// Hash the default admin password
	hash, err := bcrypt.GenerateFromPassword([]byte("Admin@123"), bcrypt.DefaultCost)
	if err != nil {
		return err // Return error if hashing fails
	}
	admin := domain.User{
		Name:     "Admin User",        // Display name
		Email:    "admin@example.com", // Admin email
		Password: string(hash),        // Hashed password
		Role:     domain.RoleAdmin,    // Admin role
	}
	if err := db.Create(&admin).Error; err != nil {
		return err // Return error if creation fails
	}
	logrus.Info("Admin user seeded") // Log success
	return nil
}

// SeedCategories inserts the stock set of categories
func SeedCategories(db *gorm.DB) error {
	categories := []domain.Category{
		{Name: "Electronics", Description: "Electronic gadgets and devices"},
		{Name: "Fashion", Description: "Clothing and accessories"},
		{Name: "Home & Kitchen", Description: "Home appliances and kitchen items"},
		{Name: "Books", Description: "A collection of books across various genres"},
		{Name: "Sports", Description: "Sports equipment and accessories"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err // Return error if insertion fails
	}
	logrus.Info("Categories seeded") // Log success
	return nil
}

// SeedProducts inserts demo products into the first seeded categories
func SeedProducts(db *gorm.DB) error {
	var categories []domain.Category // Existing categories
	if err := db.Order("created_at asc").Find(&categories).Error; err != nil {
		return err // Return error if lookup fails
	}
	if len(categories) < 5 {
		logrus.Warn("Not enough categories found, seed categories first") // Products need their categories
		return nil
	}
	image := "/uploads/placeholder.jpg" // Shared demo image
	products := []domain.Product{
		{Name: "Laptop", Description: "Gaming laptop", Price: 1200, Stock: 10, CategoryID: categories[0].ID, ImageURL: image},
		{Name: "Smartphone", Description: "Android phone", Price: 800, Stock: 15, CategoryID: categories[0].ID, ImageURL: image},
		{Name: "T-Shirt", Description: "Cotton T-Shirt", Price: 20, Stock: 50, CategoryID: categories[1].ID, ImageURL: image},
		{Name: "Microwave", Description: "Kitchen microwave", Price: 150, Stock: 12, CategoryID: categories[2].ID, ImageURL: image},
		{Name: "Harry Potter Book", Description: "Fantasy novel", Price: 30, Stock: 100, CategoryID: categories[3].ID, ImageURL: image},
		{Name: "Football", Description: "Official FIFA football", Price: 40, Stock: 25, CategoryID: categories[4].ID, ImageURL: image},
	}
	if err := db.Create(&products).Error; err != nil {
		return err // Return error if insertion fails
	}
	logrus.Info("Products seeded") // Log success
	return nil
}
