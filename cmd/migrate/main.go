package main

import (
	"finance_tracker/internal/config" // Custom import path (Config)
	"finance_tracker/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Run schema migration against MySQL
}
