package database

import (
	"context"
	"errors"
	"log"
	"time"

	"ast-fleet-console-api-server/config"
	"ast-fleet-console-api-server/internal/auth"
	"ast-fleet-console-api-server/internal/models"
	"ast-fleet-console-api-server/internal/store"
)

// SeedAdmin creates the configured admin account on first boot so the
// console is reachable before any user exists.
func SeedAdmin(ctx context.Context, st store.Store, cfg config.Config) error {
	username := cfg.Seed.AdminUsername
	if username == "" || cfg.Seed.AdminPassword == "" {
		log.Println("No seed admin configured. Seeding skipped.")
		return nil
	}

	var existing models.User
	err := st.Get(ctx, cfg.Tables.Users, store.Key{"username": username}, &existing)
	if err == nil {
		log.Println("Admin user already exists. Seeding skipped.")
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	log.Println("Admin user not found. Seeding...")
	hashedPassword, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:  username,
		Password:  hashedPassword,
		Role:      "admin",
		CreatedAt: time.Now().Unix(),
	}

	if err := st.Put(ctx, cfg.Tables.Users, admin); err != nil {
		return err
	}

	log.Println("Admin user seeded successfully.")
	return nil
}
