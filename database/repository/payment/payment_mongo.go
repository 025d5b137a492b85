// File: database/repository/payment/payment_mongo.go
package paymentRepo

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

// ErrNotFound is returned when an appointment has no payment records.
var ErrNotFound = errors.New("payment not found")

type PaymentRepository interface {
	Insert(ctx context.Context, payment *models.Payment) error
	// GetLatestByAppointment returns the newest payment for an appointment;
	// the latest record is the authoritative one.
	GetLatestByAppointment(ctx context.Context, appointmentID string) (*models.Payment, error)
	UpdateStatus(ctx context.Context, paymentID, status string) error
	EnsureIndexes() error
}

type mongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo constructs a new MongoDB PaymentRepository.
func NewMongoPaymentRepo() PaymentRepository {
	return &mongoPaymentRepo{coll: database.DB().Collection("payments")}
}

func (r *mongoPaymentRepo) Insert(ctx context.Context, payment *models.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("error inserting payment: %w", err)
	}
	return nil
}

func (r *mongoPaymentRepo) GetLatestByAppointment(ctx context.Context, appointmentID string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var payment models.Payment
	err := r.coll.FindOne(ctx, bson.M{"appointment_id": appointmentID}, opts).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching latest payment for appointment %s: %w", appointmentID, err)
	}
	return &payment, nil
}

func (r *mongoPaymentRepo) UpdateStatus(ctx context.Context, paymentID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": status}
	now := time.Now().UTC()
	switch status {
	case models.PaymentPaid:
		set["paid_at"] = now
	case models.PaymentRefunded:
		set["refunded_at"] = now
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": paymentID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating payment %s status: %w", paymentID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the payments collection.
func (r *mongoPaymentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "appointment_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("appointment_created_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create payment indexes: %w", err)
	}
	return nil
}
