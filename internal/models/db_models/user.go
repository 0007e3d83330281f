package db_models

// User is created lazily on the first request from a given identity.
// A nil Email marks a synthesized guest account.
type User struct {
	BaseModel
	Name         string
	Email        *string `gorm:"unique"`
	PasswordHash string

	Itineraries []Itinerary
}
