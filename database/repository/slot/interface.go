// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"errors"

	"soulspace/database"
	"soulspace/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no slot matches the given id (and owner).
	ErrNotFound = errors.New("slot not found")
	// ErrUnavailable is returned by Reserve when the slot does not exist,
	// belongs to another provider, or is already reserved.
	ErrUnavailable = errors.New("slot is already reserved or does not exist")
	// ErrReserved is returned by Delete when the slot is still reserved.
	ErrReserved = errors.New("slot is reserved and cannot be deleted")
)

type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	GetByID(ctx context.Context, slotID string) (*models.Slot, error)
	ListAvailable(ctx context.Context, providerID, date string) ([]models.Slot, error)
	ListByDateRange(ctx context.Context, providerID, from, to string) ([]models.Slot, error)
	HasConflict(ctx context.Context, providerID, date, start, end string) (bool, error)
	// Reserve is the sole defense against double-booking: a single
	// conditional update that flips reserved false -> true.
	Reserve(ctx context.Context, slotID, providerID string) (*models.Slot, error)
	// Release unconditionally clears the reserved flag. Idempotent.
	Release(ctx context.Context, slotID string) error
	Delete(ctx context.Context, slotID, providerID string) error
	EnsureIndexes() error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{coll: database.DB().Collection("slots")}
}
