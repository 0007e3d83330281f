package infra

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"voyago/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {
	dsn := os.Getenv("POSTGRES_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	// The vector extension must exist before the embeddings table migrates.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Printf("Could not ensure pgvector extension: %v", err)
	}

	if err := db.AutoMigrate(
		&db_models.User{},
		&db_models.Itinerary{},
		&db_models.TravelPreferences{},
		&db_models.Recommendation{},
		&db_models.ItineraryEmbedding{},
	); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return db
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed")
	}
}
