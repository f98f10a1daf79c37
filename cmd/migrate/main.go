package main

import (
	"log"
	"os"

	"facility-services-be/internal/model"
	"facility-services-be/pkg/database"

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
	log.Println("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		// Extensions
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,

		// Enums (Idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN CREATE TYPE user_role AS ENUM ('client', 'gestor', 'colaborador', 'admin'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'request_status') THEN CREATE TYPE request_status AS ENUM ('pending', 'urgent', 'approved', 'rejected', 'delegated', 'scheduled', 'in-progress'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'schedule_status') THEN CREATE TYPE schedule_status AS ENUM ('scheduled', 'in_progress', 'completed', 'cancelled', 'rescheduled'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'confirmation_status') THEN CREATE TYPE confirmation_status AS ENUM ('pending', 'confirmed', 'rejected'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'invoice_status') THEN CREATE TYPE invoice_status AS ENUM ('open', 'paid', 'overdue', 'cancelled'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Area{},
		&model.Company{},
		&model.Branch{},
		&model.User{},
		&model.ManagerArea{},
		&model.UserRefreshToken{},
		&model.ServiceCatalogItem{},
		&model.ServiceRequest{},
		&model.ScheduledService{},
		&model.ServicePhoto{},
		&model.Confirmation{},
		&model.Invoice{},
		&model.Conversation{},
		&model.Message{},
		&model.Notification{},
	}

	// Migrate strictly
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Indexes the status/date listings lean on
	log.Println("Step 3: Creating supporting indexes...")

	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_service_requests_triage
		 ON service_requests (status, desired_date);`,

		`CREATE INDEX IF NOT EXISTS idx_scheduled_services_date
		 ON scheduled_services (scheduled_date, status);`,

		`CREATE INDEX IF NOT EXISTS idx_notifications_user_unread
		 ON notifications (user_id) WHERE is_read = false;`,

		// Only one pending confirmation per schedule.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_confirmations_pending
		 ON confirmations (scheduled_service_id) WHERE status = 'pending';`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
