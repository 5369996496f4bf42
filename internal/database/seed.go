package database

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/config"
	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/model"
)

// SeedAdmin creates the default admin account so a fresh install has
// someone who can reach /inventory. It is a no-op when the account
// already exists.
func SeedAdmin(db *gorm.DB, cfg config.Config) error {
	var user model.User
	result := db.Where("email = ?", cfg.AdminEmail).First(&user)

	if result.Error == nil {
		log.Println("Admin user already exists.")
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	log.Println("Admin user not found, creating one...")

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     "admin",
		Email:        cfg.AdminEmail,
		PasswordHash: string(passwordHash),
		Role:         model.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Admin user created.")
	return nil
}
