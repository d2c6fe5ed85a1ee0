package initializers

import (
	"errors"
	"fmt"
	"log"

	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/utils"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{}, &models.Group{},
		&models.Category{}, &models.MenuItem{},
		&models.CartLine{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, name := range []string{models.GroupManager, models.GroupDeliveryCrew} {
		if err := db.FirstOrCreate(&models.Group{}, models.Group{Name: name}).Error; err != nil {
			return fmt.Errorf("seed group %q: %w", name, err)
		}
	}

	log.Println("Database synced successfully.")
	return nil
}

// SeedSuperuser creates the superuser named in the config once. It is a
// no-op when either credential is missing or the username already exists.
func SeedSuperuser(db *gorm.DB, cfg *Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Println("Skipping superuser seed: ADMIN_USERNAME/ADMIN_PASSWORD not set.")
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", cfg.AdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := models.User{Username: cfg.AdminUsername, Password: hash, IsSuperuser: true}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed superuser: %w", err)
	}
	log.Println("Superuser created:", admin.Username)
	return nil
}
