// File: database/repository/wallet/wallet_mongo.go
package walletRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"soulspace/database"
	"soulspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a provider has no wallet yet.
var ErrNotFound = errors.New("wallet not found")

type WalletRepository interface {
	// Credit atomically increments balance and total_earned, upserting the
	// wallet on first credit, and returns the wallet after the increment.
	// Concurrent credits to the same provider never lose an update.
	Credit(ctx context.Context, providerID string, amount int) (*models.Wallet, error)
	GetByProviderID(ctx context.Context, providerID string) (*models.Wallet, error)
	EnsureIndexes() error
}

type mongoWalletRepo struct {
	coll *mongo.Collection
}

// NewMongoWalletRepo constructs a new MongoDB WalletRepository.
func NewMongoWalletRepo() WalletRepository {
	return &mongoWalletRepo{coll: database.DB().Collection("wallets")}
}

func (r *mongoWalletRepo) Credit(ctx context.Context, providerID string, amount int) (*models.Wallet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID}
	update := bson.M{
		"$inc": bson.M{"balance": amount, "total_earned": amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var wallet models.Wallet
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&wallet); err != nil {
		return nil, fmt.Errorf("error crediting wallet for provider %s: %w", providerID, err)
	}
	return &wallet, nil
}

func (r *mongoWalletRepo) GetByProviderID(ctx context.Context, providerID string) (*models.Wallet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var wallet models.Wallet
	if err := r.coll.FindOne(ctx, bson.M{"provider_id": providerID}).Decode(&wallet); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching wallet for provider %s: %w", providerID, err)
	}
	return &wallet, nil
}

// EnsureIndexes creates the necessary indexes on the wallets collection.
func (r *mongoWalletRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "provider_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_provider_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create wallet indexes: %w", err)
	}
	return nil
}
