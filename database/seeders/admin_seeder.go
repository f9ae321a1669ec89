// Package seeders populates the database with its initial records.
package seeders

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/repositories"
	"github.com/shashiranjanraj/akxton/config"
	"github.com/shashiranjanraj/akxton/pkg/auth"
	"github.com/shashiranjanraj/akxton/pkg/logger"
)

// RunAll executes every seeder.
func RunAll(ctx context.Context, db *mongo.Database) error {
	return SeedAdmin(ctx, db)
}

// SeedAdmin creates the default admin account if it does not exist yet.
// Name and password come from ADMIN_NAME / ADMIN_PASSWORD; change the
// password before running this in production.
func SeedAdmin(ctx context.Context, db *mongo.Database) error {
	name := config.Get("ADMIN_NAME", "admin")
	password := config.Get("ADMIN_PASSWORD", "admin123")

	admins := repositories.NewAdminRepository(db)

	if _, err := admins.FindByName(ctx, name); err == nil {
		logger.Info("admin already seeded", "name", name)
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.Admin{Name: name, Password: hash}
	if err := admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil // raced another seeder run
		}
		return err
	}

	logger.Info("admin seeded", "name", name)
	return nil
}
