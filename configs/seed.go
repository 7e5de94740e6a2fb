package configs

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"backend/entity"
)

// SeedAdmin creates the admin account on first boot.
func SeedAdmin(cfg *Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("admin already exists:", cfg.AdminUsername)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Role:     entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// SeedCatalog fills the catalog with starter data when it is empty.
func SeedCatalog() error {
	var count int64
	if err := db.Model(&entity.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []entity.Category{
		{Name: "Appetizers", Description: "Light bites to start"},
		{Name: "Main Dishes", Description: "Hot dishes"},
		{Name: "Drinks", Description: "Hot and cold drinks"},
		{Name: "Desserts", Description: "Sweet dishes"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	items := []entity.MenuItem{
		{Name: "Bruschetta", Description: "Tomato and basil", Price: 35, IsAvailable: true, CategoryID: categories[0].ID, Image: "bruschetta.jpg"},
		{Name: "Caesar Salad", Description: "Chicken and dressing", Price: 45, IsAvailable: true, CategoryID: categories[0].ID, Image: "caesar.jpg"},
		{Name: "Steak", Description: "Beef steak with vegetables", Price: 120, IsAvailable: true, CategoryID: categories[1].ID, Image: "steak.jpg"},
		{Name: "Tom Yum Soup", Description: "Spicy Thai soup with shrimp", Price: 55, IsAvailable: true, CategoryID: categories[1].ID, Image: "tomyam.jpg"},
		{Name: "Pasta Carbonara", Description: "Bacon and cream sauce", Price: 48, IsAvailable: true, CategoryID: categories[1].ID, Image: "carbonara.jpg"},
		{Name: "Coffee", Description: "Arabica 200ml", Price: 20, IsAvailable: true, CategoryID: categories[2].ID, Image: "coffee.jpg"},
		{Name: "Tiramisu", Description: "Italian dessert", Price: 40, IsAvailable: true, CategoryID: categories[3].ID, Image: "tiramisu.jpg"},
		{Name: "Cheesecake", Description: "Classic cheesecake", Price: 35, IsAvailable: true, CategoryID: categories[3].ID, Image: "cheesecake.jpg"},
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}

	log.Println("catalog seeded")
	return nil
}
