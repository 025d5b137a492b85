// File: database/repository/slot/indexes.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the slots collection.
func (r *mongoSlotRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern: a provider's calendar for a date.
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("provider_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "date", Value: 1}, {Key: "reserved", Value: 1}},
			Options: options.Index().SetName("provider_date_reserved_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create slot indexes: %w", err)
	}
	return nil
}
