package main

import (
	"log"
	"os"

	"groupchat-be/internal/model"
	"groupchat-be/pkg/database"

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

	// 3. AutoMigrate All Models
	log.Println("Step 1: Running AutoMigrate for chat tables...")

	models := []interface{}{
		&model.Room{},
		&model.RoomMember{},
		&model.Message{},
		&model.Reaction{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Post-Migration: partial/composite indexes GORM tags cannot fully
	// express on every driver version. Idempotent, safe to re-run.
	log.Println("Step 2: Ensuring partial unique indexes...")

	postMigrationSQL := []string{
		// One live room per group.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_room_per_group
		 ON chat_rooms (group_id) WHERE is_active = true;`,

		// One membership row per (room, user) pair, live or not.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_room_member
		 ON chat_room_members (room_id, user_id);`,

		// One reaction per (message, user, emoji).
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_message_user_emoji
		 ON chat_message_reactions (message_id, user_id, emoji);`,

		// History pages walk this backwards; the tagged idx_room_message
		// on (room_id, created_at) serves the retention sweep instead.
		`CREATE INDEX IF NOT EXISTS idx_room_message_id
		 ON chat_messages (room_id, id);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
