package main

import (
	"flag"
	"log"

	"educhat-backend/internal/config"
	"educhat-backend/internal/database"
)

func main() {
	migrationsPath := flag.String("path", "migrations", "directory containing SQL migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.RunMigrations(cfg.GetDatabaseURL(), *migrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")
}
