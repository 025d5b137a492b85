// File: database/repository/provider/provider_mongo.go
package providerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"soulspace/database"
	"soulspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no provider matches the given id.
var ErrNotFound = errors.New("provider not found")

// ProviderRepository is the read model the booking core consumes, plus the
// patient counter the accept transaction increments.
type ProviderRepository interface {
	GetByID(ctx context.Context, providerID string) (*models.Provider, error)
	IncrementTotalPatients(ctx context.Context, providerID string) error
}

type mongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo constructs a new MongoDB ProviderRepository.
func NewMongoProviderRepo() ProviderRepository {
	return &mongoProviderRepo{coll: database.DB().Collection("providers")}
}

func (r *mongoProviderRepo) GetByID(ctx context.Context, providerID string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"id": providerID}).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching provider %s: %w", providerID, err)
	}
	return &provider, nil
}

func (r *mongoProviderRepo) IncrementTotalPatients(ctx context.Context, providerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"total_patients": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": providerID}, update)
	if err != nil {
		return fmt.Errorf("error incrementing patient counter for provider %s: %w", providerID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
