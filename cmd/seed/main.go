// Migration and seed script, same steps the API runs at startup
// cmd/seed/main.go
package main

import (
	"context"
	"log"

	"eduleave-api/config"
	"eduleave-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer config.CloseDB(db)

	ctx := context.Background()
	if err := services.Migrate(ctx, db); err != nil {
		log.Fatal(err)
	}

	seeded, err := services.Seed(ctx, db, services.SeedAdmin{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		log.Fatal("Failed to seed database:", err)
	}
	if !seeded {
		log.Println("Database already has departments, skipping seed")
		return
	}

	log.Println("Seed completed!")
}
