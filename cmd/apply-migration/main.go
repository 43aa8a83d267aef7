package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"outreach-data/internal/config"
	"outreach-data/pkg/database"

	_ "github.com/lib/pq"
)

func main() {
	migrationFile := "migrations/schema.sql"
	if len(os.Args) > 1 {
		migrationFile = os.Args[1]
	}

	sqlContent, err := os.ReadFile(migrationFile)
	if err != nil {
		log.Fatalf("Failed to read migration file: %v", err)
	}

	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Connected to database: %s\n\n", cfg.Database.Database)

	// Split SQL by semicolon and execute each statement
	statements := strings.Split(string(sqlContent), ";")
	executed := 0
	for i, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("Failed to execute statement %d: %v\nStatement: %s", i+1, err, stmt)
		}
		executed++
	}

	fmt.Printf("Applied %s (%d statements)\n", migrationFile, executed)
}
