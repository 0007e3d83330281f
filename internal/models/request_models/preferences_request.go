package request_models

// GenerateItineraryRequest carries the traveler preferences posted by the
// form client. Field names follow the form's snake_case payload.
type GenerateItineraryRequest struct {
	TravelType            string   `json:"travel_type" binding:"required"`
	Budget                float64  `json:"budget" binding:"required,gt=0"`
	LocalBudget           float64  `json:"local_budget"`
	TripDuration          int      `json:"trip_duration" binding:"required,min=1"`
	NumberOfTravelers     int      `json:"number_of_travelers"`
	TravelingWithChildren bool     `json:"traveling_with_children"`
	Interests             []string `json:"interests"`
	PreferredWeather      []string `json:"preferred_weather"`
	OtherRequirements     string   `json:"other_requirements"`
	ResidenceCountry      string   `json:"residence_country"`
	Currency              string   `json:"currency"`
}

type UpdateItineraryRequest struct {
	Details string `json:"details" binding:"required"`
}
