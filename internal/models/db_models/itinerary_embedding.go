package db_models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

type ItineraryEmbedding struct {
	ItineraryID string `gorm:"primaryKey;column:itinerary_id"`
	TravelType  string
	Interests   pq.StringArray  `gorm:"type:text[]"`
	Embedding   pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}
