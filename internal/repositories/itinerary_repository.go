package repositories

import (
	"context"
	"errors"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	dbm "voyago/internal/models/db_models"
)

type ItineraryRepository interface {
	// CreateWithRecommendations persists the itinerary, its preferences, its
	// recommendations and (when present) its embedding as one transaction.
	CreateWithRecommendations(ctx context.Context, itinerary *dbm.Itinerary, embedding *dbm.ItineraryEmbedding) error
	GetItineraryById(ctx context.Context, itineraryId string) (*dbm.Itinerary, error)
	GetListOfItinerariesByUserId(ctx context.Context, page int, pagesize int, userId string) ([]dbm.Itinerary, error)
	UpdateItineraryDetails(ctx context.Context, itineraryId string, details string) (*dbm.Itinerary, error)
	DeleteItinerary(ctx context.Context, itineraryId string) error
	GetSimilarItinerariesByVector(ctx context.Context, vector pgvector.Vector, excludeId string, limit int) ([]dbm.ItineraryEmbedding, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) CreateWithRecommendations(
	ctx context.Context,
	itinerary *dbm.Itinerary,
	embedding *dbm.ItineraryEmbedding,
) error {
	// A failed write must not leave an itinerary without its recommendations,
	// so everything goes through one transaction.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(itinerary).Error; err != nil {
			return err
		}
		if embedding != nil {
			embedding.ItineraryID = itinerary.ID.String()
			if err := tx.Create(embedding).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *itineraryRepository) GetItineraryById(ctx context.Context, itineraryId string) (*dbm.Itinerary, error) {
	var itinerary dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("id = ?", itineraryId).
		Preload("TravelPreferences").
		Preload("Recommendations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&itinerary).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &itinerary, nil
}

func (r *itineraryRepository) GetListOfItinerariesByUserId(ctx context.Context, page int, pagesize int, userId string) ([]dbm.Itinerary, error) {
	var itineraries []dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Preload("TravelPreferences").
		Preload("Recommendations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Offset((page - 1) * pagesize).
		Limit(pagesize).
		Find(&itineraries).Error

	if err != nil {
		return nil, err
	}

	return itineraries, nil
}

func (r *itineraryRepository) UpdateItineraryDetails(ctx context.Context, itineraryId string, details string) (*dbm.Itinerary, error) {
	res := r.db.WithContext(ctx).
		Model(&dbm.Itinerary{}).
		Where("id = ?", itineraryId).
		Update("details", details)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	return r.GetItineraryById(ctx, itineraryId)
}

func (r *itineraryRepository) DeleteItinerary(ctx context.Context, itineraryId string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("itinerary_id = ?", itineraryId).Delete(&dbm.Recommendation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("itinerary_id = ?", itineraryId).Delete(&dbm.TravelPreferences{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", itineraryId).Delete(&dbm.Itinerary{}).Error
	})
}

func (r *itineraryRepository) GetSimilarItinerariesByVector(
	ctx context.Context,
	vector pgvector.Vector,
	excludeId string,
	limit int,
) ([]dbm.ItineraryEmbedding, error) {
	var results []dbm.ItineraryEmbedding

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM itinerary_embeddings
        WHERE itinerary_id <> $2
        ORDER BY embedding <=> $1
        LIMIT $3
    `

	err := r.db.WithContext(ctx).Raw(query, vector.String(), excludeId, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
