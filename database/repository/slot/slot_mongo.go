// File: database/repository/slot/slot_mongo.go
package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"soulspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return fmt.Errorf("error creating slot: %w", err)
	}
	return nil
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	if err := r.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&slot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching slot %s: %w", slotID, err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) ListAvailable(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID, "date": date, "reserved": false}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching available slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}

func (r *mongoSlotRepo) ListByDateRange(ctx context.Context, providerID, from, to string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID, "date": bson.M{"$gte": from, "$lt": to}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching slots in range: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}

// HasConflict reports whether any existing slot for the provider/date overlaps
// the [start, end) interval or touches it exactly at either boundary.
func (r *mongoSlotRepo) HasConflict(ctx context.Context, providerID, date, start, end string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"date":        date,
		"$or": bson.A{
			bson.M{"start": bson.M{"$lt": end}, "end": bson.M{"$gt": start}},
			bson.M{"end": start},
			bson.M{"start": end},
		},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("error checking slot conflicts: %w", err)
	}
	return count > 0, nil
}

// Reserve flips reserved false -> true in one conditional update. Of N
// concurrent calls for the same slot exactly one matches the filter; the
// rest get ErrUnavailable.
func (r *mongoSlotRepo) Reserve(ctx context.Context, slotID, providerID string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "provider_id": providerID, "reserved": false}
	update := bson.M{"$set": bson.M{"reserved": true}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.Slot
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUnavailable
		}
		return nil, fmt.Errorf("error reserving slot %s: %w", slotID, err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) Release(ctx context.Context, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"reserved": false}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": slotID}, update); err != nil {
		return fmt.Errorf("error releasing slot %s: %w", slotID, err)
	}
	return nil
}

func (r *mongoSlotRepo) Delete(ctx context.Context, slotID, providerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "provider_id": providerID, "reserved": false}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("error deleting slot %s: %w", slotID, err)
	}
	if res.DeletedCount == 0 {
		// Distinguish a reserved slot from a missing one.
		count, err := r.coll.CountDocuments(ctx, bson.M{"id": slotID, "provider_id": providerID})
		if err != nil {
			return fmt.Errorf("error checking slot %s: %w", slotID, err)
		}
		if count > 0 {
			return ErrReserved
		}
		return ErrNotFound
	}
	return nil
}
