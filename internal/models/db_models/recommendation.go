package db_models

import (
	"github.com/google/uuid"
)

// Recommendation is one destination sliced out of an itinerary's raw text.
// Fields the extractor could not match stay empty. Position preserves the
// order the segments appeared in.
type Recommendation struct {
	BaseModel
	ItineraryID uuid.UUID `gorm:"type:uuid;index"`
	Position    int

	LocationName          string
	Description           string `gorm:"type:text"`
	RecommendedActivities string `gorm:"type:text"`
	Accommodation         string `gorm:"type:text"`
	DiningOptions         string `gorm:"type:text"`
	Transportation        string `gorm:"type:text"`
	SafetyTips            string `gorm:"type:text"`
	BudgetBreakdown       string `gorm:"type:text"`
	Tips                  string `gorm:"type:text"`
}
