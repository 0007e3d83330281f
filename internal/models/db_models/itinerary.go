package db_models

import (
	"github.com/google/uuid"
)

// Itinerary owns the raw completion text plus the preferences it was
// generated from and the recommendations extracted out of it. Created once
// per generation request; only the explicit update endpoint mutates it.
type Itinerary struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;index"`
	Details string    `gorm:"type:text"`

	TravelPreferences TravelPreferences `gorm:"constraint:OnDelete:CASCADE"`
	Recommendations   []Recommendation  `gorm:"constraint:OnDelete:CASCADE"`
}
