// File: database/repository/user/user_mongo.go
package userRepo

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

// ErrNotFound is returned when no user matches the given id.
var ErrNotFound = errors.New("user not found")

// UserRepository is the requester read model consumed by appointment views
// and the notification gateway.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB UserRepository.
func NewMongoUserRepo() UserRepository {
	return &mongoUserRepo{coll: database.DB().Collection("users")}
}

func (r *mongoUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": userID}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching user %s: %w", userID, err)
	}
	return &user, nil
}
