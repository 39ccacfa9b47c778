package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/boulder/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/boulder/internal/config"
)

// Applies one embedded postgres migration, e.g. `migrations init.down`.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("a migration name is required.")
	}
	migrationName := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	if cfg.Database.Type != config.StorePostgres {
		log.Fatalf("migrations apply to the postgres store only, DATABASE_TYPE is %q", cfg.Database.Type)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	fileContent, err := postgres.MigrationFile(migrationName)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := db.ExecContext(context.Background(), string(fileContent)); err != nil {
		log.Fatalf("Failed to execute SQL file: %v", err)
	}

	fmt.Println("Migration file executed successfully.")
}
