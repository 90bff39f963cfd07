package main

import (
	"log"
	"os"

	"github.com/cleanaz-dev/hueline-sub000/internal/model"
	"github.com/cleanaz-dev/hueline-sub000/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions & Enums (Things GORM AutoMigrate doesn't do perfectly)
	color.Cyan("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		// Extensions
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,

		// Enums (Idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'walkthrough_mode') THEN CREATE TYPE walkthrough_mode AS ENUM ('PROJECT', 'QUICK', 'SELF_SERVE'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'walkthrough_status') THEN CREATE TYPE walkthrough_status AS ENUM ('PENDING', 'ACTIVE', 'ENDED'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	color.Cyan("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Session{},
		&model.ScopeItem{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	// 5. Post-Migration: Triggers GORM cannot express
	color.Cyan("Step 3: Installing updated_at trigger...")

	postMigrationSQL := []string{
		`CREATE OR REPLACE FUNCTION set_updated_at() RETURNS TRIGGER LANGUAGE plpgsql AS $$
		BEGIN
		  NEW.updated_at = now();
		  RETURN NEW;
		END; $$;`,

		`DROP TRIGGER IF EXISTS walkthrough_sessions_set_updated_at ON walkthrough_sessions;`,
		`CREATE TRIGGER walkthrough_sessions_set_updated_at
		 BEFORE UPDATE ON walkthrough_sessions
		 FOR EACH ROW EXECUTE FUNCTION set_updated_at();`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	color.Green("✅ Success: Database migration completed successfully via GORM.")
}
