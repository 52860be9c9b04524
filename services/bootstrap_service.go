package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"eduleave-api/models"

	"gorm.io/gorm"
)

// DefaultDepartments is the reference data inserted into an empty database.
var DefaultDepartments = []models.Department{
	{Name: "Computer Science", Code: "CS"},
	{Name: "Electronics", Code: "EC"},
	{Name: "Mechanical", Code: "ME"},
	{Name: "Civil", Code: "CE"},
}

// SeedAdmin describes the admin account created on first start.
type SeedAdmin struct {
	Email    string
	Password string
	Name     string
}

// Migrate creates or updates every table the API uses.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&models.Department{},
		&models.User{},
		&models.Class{},
		&models.LeaveApplication{},
		&models.LeaveStatusHistory{},
		&models.Notification{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

// Seed inserts the default departments and the admin account when the
// departments table is empty. It is a no-op on a populated database.
func Seed(ctx context.Context, db *gorm.DB, admin SeedAdmin) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Department{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count departments: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || admin.Password == "" {
		return false, errors.New("seed admin email and password are required")
	}
	name := strings.TrimSpace(admin.Name)
	if name == "" {
		name = "System Admin"
	}

	hashed, err := HashPassword(admin.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		departments := make([]models.Department, len(DefaultDepartments))
		copy(departments, DefaultDepartments)
		if err := tx.Create(&departments).Error; err != nil {
			return fmt.Errorf("insert departments: %w", err)
		}

		var existing int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			return fmt.Errorf("check admin: %w", err)
		}
		if existing > 0 {
			log.Printf("[seed] admin %s already exists, skipping", email)
			return nil
		}

		user := models.User{Email: email, Password: hashed, Name: name, Role: models.RoleAdmin}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("insert admin: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Printf("[seed] sample data inserted successfully")
	return true, nil
}
