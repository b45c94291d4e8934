package migration

import (
	"fmt"

	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions configures the initial superadmin account
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Seed inserts a superadmin and a demo course when the profiles table is empty
func Seed(db *gorm.DB, opts SeedOptions) error {
	var count int64
	if err := db.Model(&domain.Profile{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		return fmt.Errorf("seed: admin email and password are required")
	}
	if opts.AdminName == "" {
		opts.AdminName = "Administrator"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := domain.Profile{
			Email:        opts.AdminEmail,
			PasswordHash: string(hash),
			DisplayName:  opts.AdminName,
			Role:         domain.RoleSuperAdmin,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		desc := "Questions about getting started with GyanSetu"
		course := domain.Course{
			Name:        "Introduction to GyanSetu",
			Code:        "GS101",
			Description: &desc,
			Semester:    "All",
		}
		return tx.Create(&course).Error
	})
}
