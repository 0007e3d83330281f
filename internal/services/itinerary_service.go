package services

import (
	"context"
	"log"

	"voyago/internal/models/db_models"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/repositories"
	"voyago/pkg/utils"
)

type ItineraryServiceInterface interface {
	// GenerateItinerary runs the whole pipeline for one request:
	// validate -> resolve user -> prompt -> completion -> parse -> persist.
	GenerateItinerary(ctx context.Context, identity Identity, req request_models.GenerateItineraryRequest) (*response_models.GenerateItineraryResponse, error)
	GetItineraryById(ctx context.Context, itineraryId string) (*response_models.GenerateItineraryResponse, error)
	GetItinerariesByUserId(ctx context.Context, userId string, page, pagesize int) ([]response_models.GenerateItineraryResponse, error)
	UpdateItineraryDetails(ctx context.Context, itineraryId string, details string) (*response_models.GenerateItineraryResponse, error)
	DeleteItinerary(ctx context.Context, itineraryId string) error
	GetSimilarItineraries(ctx context.Context, itineraryId string, limit int) ([]response_models.SimilarItineraryResponse, error)
}

type ItineraryService struct {
	promptService  PromptServiceInterface
	accountService AccountServiceInterface
	completion     utils.CompletionClientInterface
	itineraryRepo  repositories.ItineraryRepository
}

func NewItineraryService(
	promptService PromptServiceInterface,
	accountService AccountServiceInterface,
	completion utils.CompletionClientInterface,
	itineraryRepo repositories.ItineraryRepository,
) ItineraryServiceInterface {
	return &ItineraryService{
		promptService:  promptService,
		accountService: accountService,
		completion:     completion,
		itineraryRepo:  itineraryRepo,
	}
}

func (s *ItineraryService) GenerateItinerary(
	ctx context.Context,
	identity Identity,
	req request_models.GenerateItineraryRequest,
) (*response_models.GenerateItineraryResponse, error) {

	// Rejected before any external call is made.
	if err := normalizePreferences(&req); err != nil {
		return nil, err
	}

	user, err := s.accountService.ResolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	prompt := s.promptService.BuildPrompt(req)

	raw, err := s.completion.GenerateItinerary(ctx, prompt)
	if err != nil {
		log.Printf("completion call failed: %v", err)
		return nil, utils.ErrCompletionFailed
	}

	recommendations := s.promptService.ParseRecommendations(raw)

	itinerary := &db_models.Itinerary{
		UserID:  user.ID,
		Details: raw,
		TravelPreferences: db_models.TravelPreferences{
			TravelType:            req.TravelType,
			Budget:                req.Budget,
			LocalBudget:           req.LocalBudget,
			TripDuration:          req.TripDuration,
			NumberOfTravelers:     req.NumberOfTravelers,
			TravelingWithChildren: req.TravelingWithChildren,
			Interests:             req.Interests,
			PreferredWeather:      req.PreferredWeather,
			OtherRequirements:     req.OtherRequirements,
			ResidenceCountry:      req.ResidenceCountry,
			Currency:              req.Currency,
		},
		Recommendations: recommendations,
	}

	embedding := s.buildEmbedding(ctx, itinerary.TravelPreferences)

	if err := s.itineraryRepo.CreateWithRecommendations(ctx, itinerary, embedding); err != nil {
		log.Printf("failed to persist itinerary: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return response_models.BuildGenerateItineraryResponse(itinerary), nil
}

// buildEmbedding derives the similarity vector for an itinerary. Embeddings
// are an enrichment on top of the pipeline, so a failure here only costs the
// similar-itineraries lookup, never the generation itself.
func (s *ItineraryService) buildEmbedding(ctx context.Context, prefs db_models.TravelPreferences) *db_models.ItineraryEmbedding {
	vector, err := s.completion.GetEmbedding(ctx, embeddingText(prefs))
	if err != nil {
		log.Printf("embedding generation failed, skipping: %v", err)
		return nil
	}
	return &db_models.ItineraryEmbedding{
		TravelType: prefs.TravelType,
		Interests:  prefs.Interests,
		Embedding:  vector,
	}
}

func embeddingText(prefs db_models.TravelPreferences) string {
	parts := []string{prefs.TravelType}
	parts = append(parts, prefs.Interests...)
	parts = append(parts, prefs.PreferredWeather...)
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}

// normalizePreferences enforces the required fields and fills the derived
// defaults the form layer leaves open.
func normalizePreferences(req *request_models.GenerateItineraryRequest) error {
	if req.TravelType == "" || req.Budget <= 0 || req.TripDuration < 1 {
		return utils.ErrInvalidPreferences
	}
	if req.NumberOfTravelers < 1 {
		req.NumberOfTravelers = 1
	}
	if req.LocalBudget <= 0 {
		req.LocalBudget = req.Budget / float64(req.TripDuration)
	}
	return nil
}

func (s *ItineraryService) GetItineraryById(ctx context.Context, itineraryId string) (*response_models.GenerateItineraryResponse, error) {
	itinerary, err := s.itineraryRepo.GetItineraryById(ctx, itineraryId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return response_models.BuildGenerateItineraryResponse(itinerary), nil
}

func (s *ItineraryService) GetItinerariesByUserId(ctx context.Context, userId string, page, pagesize int) ([]response_models.GenerateItineraryResponse, error) {
	itineraries, err := s.itineraryRepo.GetListOfItinerariesByUserId(ctx, page, pagesize, userId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.GenerateItineraryResponse, 0, len(itineraries))
	for i := range itineraries {
		out = append(out, *response_models.BuildGenerateItineraryResponse(&itineraries[i]))
	}
	return out, nil
}

func (s *ItineraryService) UpdateItineraryDetails(ctx context.Context, itineraryId string, details string) (*response_models.GenerateItineraryResponse, error) {
	itinerary, err := s.itineraryRepo.UpdateItineraryDetails(ctx, itineraryId, details)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return response_models.BuildGenerateItineraryResponse(itinerary), nil
}

func (s *ItineraryService) DeleteItinerary(ctx context.Context, itineraryId string) error {
	itinerary, err := s.itineraryRepo.GetItineraryById(ctx, itineraryId)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if itinerary == nil {
		return utils.ErrItineraryNotFound
	}
	if err := s.itineraryRepo.DeleteItinerary(ctx, itineraryId); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *ItineraryService) GetSimilarItineraries(ctx context.Context, itineraryId string, limit int) ([]response_models.SimilarItineraryResponse, error) {
	itinerary, err := s.itineraryRepo.GetItineraryById(ctx, itineraryId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}

	vector, err := s.completion.GetEmbedding(ctx, embeddingText(itinerary.TravelPreferences))
	if err != nil {
		return nil, utils.ErrCompletionFailed
	}

	neighbors, err := s.itineraryRepo.GetSimilarItinerariesByVector(ctx, vector, itineraryId, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.SimilarItineraryResponse, 0, len(neighbors))
	for _, n := range neighbors {
		out = append(out, response_models.SimilarItineraryResponse{
			ItineraryID: n.ItineraryID,
			TravelType:  n.TravelType,
			Interests:   n.Interests,
		})
	}
	return out, nil
}
