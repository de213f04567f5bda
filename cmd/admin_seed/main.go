// Command admin_seed creates the administrator principal from
// ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_PHONE.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"paylater/internal/config"
	"paylater/internal/models"
	"paylater/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminPhone := os.Getenv("ADMIN_PHONE")
	if adminEmail == "" || adminPassword == "" || adminPhone == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD, and ADMIN_PHONE must be set in environment")
	}

	db, err := repositories.InitDB()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	store := repositories.NewStore(db)

	ctx := context.Background()
	if _, err := store.Users().GetByEmail(ctx, adminEmail); err == nil {
		log.Println("admin user already exists")
		return
	} else if !errors.Is(err, repositories.ErrNotFound) {
		log.Fatalf("admin lookup failed: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &models.User{
		Email:        adminEmail,
		Password:     string(hashed),
		Phone:        adminPhone,
		Role:         models.RoleAdmin,
		TokenVersion: 1,
	}
	if err := store.Users().Create(ctx, admin); err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	log.Printf("admin account created with id %d", admin.ID)
}
