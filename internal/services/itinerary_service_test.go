package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/internal/models/db_models"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/repositories"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

type mockCompletionClient struct {
	GenerateItineraryFn func(ctx context.Context, prompt string) (string, error)
	GetEmbeddingFn      func(ctx context.Context, text string) (pgvector.Vector, error)
}

func (m *mockCompletionClient) GenerateItinerary(ctx context.Context, prompt string) (string, error) {
	return m.GenerateItineraryFn(ctx, prompt)
}

func (m *mockCompletionClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	if m.GetEmbeddingFn != nil {
		return m.GetEmbeddingFn(ctx, text)
	}
	return pgvector.NewVector(make([]float32, 4)), nil
}

func (m *mockCompletionClient) Close() error { return nil }

type mockItineraryRepo struct {
	CreateWithRecommendationsFn     func(ctx context.Context, itinerary *db_models.Itinerary, embedding *db_models.ItineraryEmbedding) error
	GetItineraryByIdFn              func(ctx context.Context, itineraryId string) (*db_models.Itinerary, error)
	GetListOfItinerariesByUserIdFn  func(ctx context.Context, page, pagesize int, userId string) ([]db_models.Itinerary, error)
	UpdateItineraryDetailsFn        func(ctx context.Context, itineraryId, details string) (*db_models.Itinerary, error)
	DeleteItineraryFn               func(ctx context.Context, itineraryId string) error
	GetSimilarItinerariesByVectorFn func(ctx context.Context, vector pgvector.Vector, excludeId string, limit int) ([]db_models.ItineraryEmbedding, error)
}

var _ repositories.ItineraryRepository = (*mockItineraryRepo)(nil)

func (m *mockItineraryRepo) CreateWithRecommendations(ctx context.Context, itinerary *db_models.Itinerary, embedding *db_models.ItineraryEmbedding) error {
	return m.CreateWithRecommendationsFn(ctx, itinerary, embedding)
}

func (m *mockItineraryRepo) GetItineraryById(ctx context.Context, itineraryId string) (*db_models.Itinerary, error) {
	return m.GetItineraryByIdFn(ctx, itineraryId)
}

func (m *mockItineraryRepo) GetListOfItinerariesByUserId(ctx context.Context, page, pagesize int, userId string) ([]db_models.Itinerary, error) {
	return m.GetListOfItinerariesByUserIdFn(ctx, page, pagesize, userId)
}

func (m *mockItineraryRepo) UpdateItineraryDetails(ctx context.Context, itineraryId, details string) (*db_models.Itinerary, error) {
	return m.UpdateItineraryDetailsFn(ctx, itineraryId, details)
}

func (m *mockItineraryRepo) DeleteItinerary(ctx context.Context, itineraryId string) error {
	return m.DeleteItineraryFn(ctx, itineraryId)
}

func (m *mockItineraryRepo) GetSimilarItinerariesByVector(ctx context.Context, vector pgvector.Vector, excludeId string, limit int) ([]db_models.ItineraryEmbedding, error) {
	return m.GetSimilarItinerariesByVectorFn(ctx, vector, excludeId, limit)
}

type mockAccountService struct {
	ResolveUserFn func(ctx context.Context, identity services.Identity) (*db_models.User, error)
}

func (m *mockAccountService) SignUp(ctx context.Context, request request_models.SignUpRequest) error {
	panic("not expected")
}

func (m *mockAccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, error) {
	panic("not expected")
}

func (m *mockAccountService) ResolveUser(ctx context.Context, identity services.Identity) (*db_models.User, error) {
	return m.ResolveUserFn(ctx, identity)
}

func (m *mockAccountService) GetUserById(ctx context.Context, userId string) (*response_models.UserResponse, error) {
	panic("not expected")
}

func newTestItineraryService(
	completion *mockCompletionClient,
	repo *mockItineraryRepo,
	accounts *mockAccountService,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(services.NewPromptService(), accounts, completion, repo)
}

func fixedUser() *db_models.User {
	return &db_models.User{
		BaseModel: db_models.BaseModel{ID: uuid.New()},
		Name:      "Guest 1",
	}
}

func TestGenerateItinerary_HappyPath(t *testing.T) {
	var persisted *db_models.Itinerary
	var persistedEmbedding *db_models.ItineraryEmbedding

	completion := &mockCompletionClient{
		GenerateItineraryFn: func(ctx context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "adventure")
			return twoSegmentResponse, nil
		},
	}
	repo := &mockItineraryRepo{
		CreateWithRecommendationsFn: func(ctx context.Context, itinerary *db_models.Itinerary, embedding *db_models.ItineraryEmbedding) error {
			itinerary.ID = uuid.New()
			persisted = itinerary
			persistedEmbedding = embedding
			return nil
		},
	}
	accounts := &mockAccountService{
		ResolveUserFn: func(ctx context.Context, identity services.Identity) (*db_models.User, error) {
			return fixedUser(), nil
		},
	}

	svc := newTestItineraryService(completion, repo, accounts)

	resp, err := svc.GenerateItinerary(context.Background(), services.Identity{}, validPreferences())

	require.NoError(t, err)
	require.NotNil(t, resp)

	// The raw completion text is stored verbatim as the itinerary details.
	assert.Equal(t, twoSegmentResponse, resp.Itinerary.Details)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "Kyoto, Japan", resp.Recommendations[0].LocationName)
	assert.Equal(t, "Queenstown, New Zealand", resp.Recommendations[1].LocationName)

	require.NotNil(t, persisted)
	assert.Len(t, persisted.Recommendations, 2)
	assert.Equal(t, "adventure", persisted.TravelPreferences.TravelType)
	require.NotNil(t, persistedEmbedding)
	assert.Equal(t, "adventure", persistedEmbedding.TravelType)
}

func TestGenerateItinerary_CompletionFailureDoesNotPersist(t *testing.T) {
	createCalled := false

	completion := &mockCompletionClient{
		GenerateItineraryFn: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	repo := &mockItineraryRepo{
		CreateWithRecommendationsFn: func(ctx context.Context, itinerary *db_models.Itinerary, embedding *db_models.ItineraryEmbedding) error {
			createCalled = true
			return nil
		},
	}
	accounts := &mockAccountService{
		ResolveUserFn: func(ctx context.Context, identity services.Identity) (*db_models.User, error) {
			return fixedUser(), nil
		},
	}

	svc := newTestItineraryService(completion, repo, accounts)

	resp, err := svc.GenerateItinerary(context.Background(), services.Identity{}, validPreferences())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, utils.ErrCompletionFailed)
	assert.False(t, createCalled, "nothing may be persisted when the completion call fails")
}

func TestGenerateItinerary_InvalidPreferencesRejectedBeforeExternalCalls(t *testing.T) {
	completionCalled := false

	completion := &mockCompletionClient{
		GenerateItineraryFn: func(ctx context.Context, prompt string) (string, error) {
			completionCalled = true
			return twoSegmentResponse, nil
		},
	}
	repo := &mockItineraryRepo{}
	accounts := &mockAccountService{
		ResolveUserFn: func(ctx context.Context, identity services.Identity) (*db_models.User, error) {
			t.Fatal("user resolution must not run for invalid preferences")
			return nil, nil
		},
	}

	svc := newTestItineraryService(completion, repo, accounts)

	for _, req := range []request_models.GenerateItineraryRequest{
		{Budget: 2000, TripDuration: 5},
		{TravelType: "adventure", Budget: 0, TripDuration: 5},
		{TravelType: "adventure", Budget: 2000, TripDuration: 0},
	} {
		resp, err := svc.GenerateItinerary(context.Background(), services.Identity{}, req)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, utils.ErrInvalidPreferences)
	}
	assert.False(t, completionCalled)
}

func TestGenerateItinerary_PersistenceFailure(t *testing.T) {
	completion := &mockCompletionClient{
		GenerateItineraryFn: func(ctx context.Context, prompt string) (string, error) {
			return twoSegmentResponse, nil
		},
	}
	repo := &mockItineraryRepo{
		CreateWithRecommendationsFn: func(ctx context.Context, itinerary *db_models.Itinerary, embedding *db_models.ItineraryEmbedding) error {
			return errors.New("connection reset")
		},
	}
	accounts := &mockAccountService{
		ResolveUserFn: func(ctx context.Context, identity services.Identity) (*db_models.User, error) {
			return fixedUser(), nil
		},
	}

	svc := newTestItineraryService(completion, repo, accounts)

	resp, err := svc.GenerateItinerary(context.Background(), services.Identity{}, validPreferences())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestGenerateItinerary_EmbeddingFailureIsNonFatal(t *testing.T) {
	var persistedEmbedding *db_models.ItineraryEmbedding
	embeddingSeen := false

	completion := &mockCompletionClient{
		GenerateItineraryFn: func(ctx context.Context, prompt string) (string, error) {
			return twoSegmentResponse, nil
		},
		GetEmbeddingFn: func(ctx context.Context, text string) (pgvector.Vector, error) {
			embeddingSeen = true
			return pgvector.Vector{}, errors.New("embedding backend down")
		},
	}
	repo := &mockItineraryRepo{
		CreateWithRecommendationsFn: func(ctx context.Context, itinerary *db_models.Itinerary, embedding *db_models.ItineraryEmbedding) error {
			persistedEmbedding = embedding
			return nil
		},
	}
	accounts := &mockAccountService{
		ResolveUserFn: func(ctx context.Context, identity services.Identity) (*db_models.User, error) {
			return fixedUser(), nil
		},
	}

	svc := newTestItineraryService(completion, repo, accounts)

	resp, err := svc.GenerateItinerary(context.Background(), services.Identity{}, validPreferences())

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, embeddingSeen)
	assert.Nil(t, persistedEmbedding)
}

func TestGenerateItinerary_UnparseableResponseStillPersists(t *testing.T) {
	flat := "Sorry, I can only suggest that you visit a warm place with good food."

	completion := &mockCompletionClient{
		GenerateItineraryFn: func(ctx context.Context, prompt string) (string, error) {
			return flat, nil
		},
	}
	repo := &mockItineraryRepo{
		CreateWithRecommendationsFn: func(ctx context.Context, itinerary *db_models.Itinerary, embedding *db_models.ItineraryEmbedding) error {
			return nil
		},
	}
	accounts := &mockAccountService{
		ResolveUserFn: func(ctx context.Context, identity services.Identity) (*db_models.User, error) {
			return fixedUser(), nil
		},
	}

	svc := newTestItineraryService(completion, repo, accounts)

	resp, err := svc.GenerateItinerary(context.Background(), services.Identity{}, validPreferences())

	require.NoError(t, err)
	assert.Equal(t, flat, resp.Itinerary.Details)
	require.Len(t, resp.Recommendations, 1)
	assert.Empty(t, resp.Recommendations[0].Description)
}

func TestGetItineraryById_NotFound(t *testing.T) {
	repo := &mockItineraryRepo{
		GetItineraryByIdFn: func(ctx context.Context, itineraryId string) (*db_models.Itinerary, error) {
			return nil, nil
		},
	}
	svc := newTestItineraryService(&mockCompletionClient{}, repo, &mockAccountService{})

	resp, err := svc.GetItineraryById(context.Background(), uuid.NewString())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, utils.ErrItineraryNotFound)
}

func TestDeleteItinerary_NotFound(t *testing.T) {
	deleteCalled := false
	repo := &mockItineraryRepo{
		GetItineraryByIdFn: func(ctx context.Context, itineraryId string) (*db_models.Itinerary, error) {
			return nil, nil
		},
		DeleteItineraryFn: func(ctx context.Context, itineraryId string) error {
			deleteCalled = true
			return nil
		},
	}
	svc := newTestItineraryService(&mockCompletionClient{}, repo, &mockAccountService{})

	err := svc.DeleteItinerary(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, utils.ErrItineraryNotFound)
	assert.False(t, deleteCalled)
}

func TestGetSimilarItineraries_ExcludesSelf(t *testing.T) {
	ownId := uuid.NewString()

	repo := &mockItineraryRepo{
		GetItineraryByIdFn: func(ctx context.Context, itineraryId string) (*db_models.Itinerary, error) {
			return &db_models.Itinerary{
				TravelPreferences: db_models.TravelPreferences{
					TravelType: "relaxation",
					Interests:  []string{"beaches"},
				},
			}, nil
		},
		GetSimilarItinerariesByVectorFn: func(ctx context.Context, vector pgvector.Vector, excludeId string, limit int) ([]db_models.ItineraryEmbedding, error) {
			assert.Equal(t, ownId, excludeId)
			assert.Equal(t, 5, limit)
			return []db_models.ItineraryEmbedding{
				{ItineraryID: uuid.NewString(), TravelType: "relaxation", Interests: []string{"beaches"}},
			}, nil
		},
	}
	svc := newTestItineraryService(&mockCompletionClient{}, repo, &mockAccountService{})

	neighbors, err := svc.GetSimilarItineraries(context.Background(), ownId, 5)

	require.NoError(t, err)
	require.Len(t, neighbors, 1)
	assert.Equal(t, "relaxation", neighbors[0].TravelType)
}
