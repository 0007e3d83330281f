package response_models

import (
	"voyago/internal/models/db_models"
)

type TravelPreferencesResponse struct {
	TravelType            string   `json:"travel_type"`
	Budget                float64  `json:"budget"`
	LocalBudget           float64  `json:"local_budget"`
	TripDuration          int      `json:"trip_duration"`
	NumberOfTravelers     int      `json:"number_of_travelers"`
	TravelingWithChildren bool     `json:"traveling_with_children"`
	Interests             []string `json:"interests"`
	PreferredWeather      []string `json:"preferred_weather"`
	OtherRequirements     string   `json:"other_requirements,omitempty"`
	ResidenceCountry      string   `json:"residence_country,omitempty"`
	Currency              string   `json:"currency,omitempty"`
}

type RecommendationResponse struct {
	ID                    string `json:"id"`
	LocationName          string `json:"location_name"`
	Description           string `json:"description"`
	RecommendedActivities string `json:"recommended_activities"`
	Accommodation         string `json:"accommodation"`
	DiningOptions         string `json:"dining_options"`
	Transportation        string `json:"transportation"`
	SafetyTips            string `json:"safety_tips"`
	BudgetBreakdown       string `json:"budget_breakdown"`
	Tips                  string `json:"tips"`
}

type ItineraryResponse struct {
	ID          string                    `json:"id"`
	UserID      string                    `json:"user_id"`
	Details     string                    `json:"details"`
	CreatedAt   int64                     `json:"created_at"`
	Preferences TravelPreferencesResponse `json:"travel_preferences"`
}

// GenerateItineraryResponse mirrors the shape the form client renders:
// the itinerary plus its recommendations as a flat sibling list.
type GenerateItineraryResponse struct {
	Itinerary       ItineraryResponse        `json:"itinerary"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

type SimilarItineraryResponse struct {
	ItineraryID string   `json:"itinerary_id"`
	TravelType  string   `json:"travel_type"`
	Interests   []string `json:"interests"`
}

func BuildItineraryResponse(it *db_models.Itinerary) ItineraryResponse {
	return ItineraryResponse{
		ID:        it.ID.String(),
		UserID:    it.UserID.String(),
		Details:   it.Details,
		CreatedAt: it.CreatedAt,
		Preferences: TravelPreferencesResponse{
			TravelType:            it.TravelPreferences.TravelType,
			Budget:                it.TravelPreferences.Budget,
			LocalBudget:           it.TravelPreferences.LocalBudget,
			TripDuration:          it.TravelPreferences.TripDuration,
			NumberOfTravelers:     it.TravelPreferences.NumberOfTravelers,
			TravelingWithChildren: it.TravelPreferences.TravelingWithChildren,
			Interests:             it.TravelPreferences.Interests,
			PreferredWeather:      it.TravelPreferences.PreferredWeather,
			OtherRequirements:     it.TravelPreferences.OtherRequirements,
			ResidenceCountry:      it.TravelPreferences.ResidenceCountry,
			Currency:              it.TravelPreferences.Currency,
		},
	}
}

func BuildRecommendationResponses(recs []db_models.Recommendation) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, RecommendationResponse{
			ID:                    rec.ID.String(),
			LocationName:          rec.LocationName,
			Description:           rec.Description,
			RecommendedActivities: rec.RecommendedActivities,
			Accommodation:         rec.Accommodation,
			DiningOptions:         rec.DiningOptions,
			Transportation:        rec.Transportation,
			SafetyTips:            rec.SafetyTips,
			BudgetBreakdown:       rec.BudgetBreakdown,
			Tips:                  rec.Tips,
		})
	}
	return out
}

func BuildGenerateItineraryResponse(it *db_models.Itinerary) *GenerateItineraryResponse {
	return &GenerateItineraryResponse{
		Itinerary:       BuildItineraryResponse(it),
		Recommendations: BuildRecommendationResponses(it.Recommendations),
	}
}

type UserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	IsGuest bool   `json:"is_guest"`
}

func BuildUserResponse(user *db_models.User) UserResponse {
	out := UserResponse{
		ID:      user.ID.String(),
		Name:    user.Name,
		IsGuest: user.Email == nil,
	}
	if user.Email != nil {
		out.Email = *user.Email
	}
	return out
}
