// File: database/repository/appointment/appointment_mongo.go
package appointmentRepo

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

func (r *mongoAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("error inserting appointment: %w", err)
	}
	return nil
}

func (r *mongoAppointmentRepo) GetByIDForUser(ctx context.Context, appointmentID, userID string) (*models.Appointment, error) {
	return r.getOne(ctx, bson.M{"id": appointmentID, "user_id": userID})
}

func (r *mongoAppointmentRepo) GetByIDForProvider(ctx context.Context, appointmentID, providerID string) (*models.Appointment, error) {
	return r.getOne(ctx, bson.M{"id": appointmentID, "provider_id": providerID})
}

func (r *mongoAppointmentRepo) getOne(ctx context.Context, filter bson.M) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment: %w", err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) ListByUser(ctx context.Context, userID, status string) ([]models.Appointment, error) {
	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter, bson.D{{Key: "date", Value: -1}, {Key: "start", Value: -1}})
}

func (r *mongoAppointmentRepo) ListByProvider(ctx context.Context, providerID, status string) ([]models.Appointment, error) {
	filter := bson.M{"provider_id": providerID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter, bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
}

func (r *mongoAppointmentRepo) list(ctx context.Context, filter bson.M, sort bson.D) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// MarkUpcoming flips pending -> upcoming. The status predicate in the filter
// makes racing transitions mutually exclusive: whichever update matches first
// wins, the loser sees ErrInvalidTransition.
func (r *mongoAppointmentRepo) MarkUpcoming(ctx context.Context, appointmentID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": appointmentID, "status": models.AppointmentPending}
	update := bson.M{"$set": bson.M{
		"status":     models.AppointmentUpcoming,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error accepting appointment %s: %w", appointmentID, err)
	}
	if res.MatchedCount == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *mongoAppointmentRepo) MarkCancelled(ctx context.Context, appointmentID, actor, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"status":       models.AppointmentCancelled,
		"cancelled_by": actor,
		"updated_at":   time.Now().UTC(),
	}
	if reason != "" {
		set["cancel_reason"] = reason
	}
	filter := bson.M{"id": appointmentID, "status": models.AppointmentPending}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error cancelling appointment %s: %w", appointmentID, err)
	}
	if res.MatchedCount == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// MarkElapsedPast issues the sweeper's two bulk conditional updates: all
// upcoming appointments dated before today, and today's whose end time has
// passed. The predicate is stable, so re-running is a no-op for documents
// already promoted.
func (r *mongoAppointmentRepo) MarkElapsedPast(ctx context.Context, today, now string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	set := bson.M{"$set": bson.M{
		"status":     models.AppointmentPast,
		"updated_at": time.Now().UTC(),
	}}

	res1, err := r.coll.UpdateMany(ctx, bson.M{
		"status": models.AppointmentUpcoming,
		"date":   bson.M{"$lt": today},
	}, set)
	if err != nil {
		return 0, fmt.Errorf("error promoting past-dated appointments: %w", err)
	}

	res2, err := r.coll.UpdateMany(ctx, bson.M{
		"status": models.AppointmentUpcoming,
		"date":   today,
		"end":    bson.M{"$lt": now},
	}, set)
	if err != nil {
		return res1.ModifiedCount, fmt.Errorf("error promoting elapsed appointments: %w", err)
	}

	return res1.ModifiedCount + res2.ModifiedCount, nil
}
