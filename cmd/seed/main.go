package main

import (
	"context"
	"log"
	"time"

	"github.com/asysyifa-husada/clinic-service/internal/auth"
	"github.com/asysyifa-husada/clinic-service/internal/seed"
	"github.com/asysyifa-husada/clinic-service/internal/storage"
	"github.com/asysyifa-husada/clinic-service/internal/users"
)

// Provisions a fresh storage area: superadmin account plus sample data.
// Useful for preparing a sqlite file before first deployment.
func main() {
	log.Println("Clinic Seed Job - Starting")

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	kv, err := storage.Open(ctx)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer kv.Close()

	userService := users.NewService(kv, auth.NewTokenService())
	if err := userService.Bootstrap(ctx); err != nil {
		log.Fatalf("Failed to bootstrap superadmin: %v", err)
	}

	if err := seed.Run(ctx, kv); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("✓ Seed Job - Finished")
}
