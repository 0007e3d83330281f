package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type TravelPreferences struct {
	BaseModel
	ItineraryID uuid.UUID `gorm:"type:uuid;index"`

	TravelType            string
	Budget                float64
	LocalBudget           float64
	TripDuration          int
	NumberOfTravelers     int
	TravelingWithChildren bool
	Interests             pq.StringArray `gorm:"type:text[]"`
	PreferredWeather      pq.StringArray `gorm:"type:text[]"`
	OtherRequirements     string
	ResidenceCountry      string
	Currency              string `gorm:"size:3"`
}
