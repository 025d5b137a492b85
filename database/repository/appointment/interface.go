// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"

	"soulspace/database"
	"soulspace/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no appointment matches the id for the
	// given owner. Ownership is part of the query filter, so a party asking
	// for someone else's appointment sees the same error as for a missing
	// one.
	ErrNotFound = errors.New("appointment not found")
	// ErrInvalidTransition is returned by the conditional status updates
	// when the appointment is no longer pending. Whoever won the race owns
	// the transition; callers surface this as an invalid-state conflict.
	ErrInvalidTransition = errors.New("appointment is not in a state that allows this transition")
)

type AppointmentRepository interface {
	Insert(ctx context.Context, appt *models.Appointment) error
	GetByIDForUser(ctx context.Context, appointmentID, userID string) (*models.Appointment, error)
	GetByIDForProvider(ctx context.Context, appointmentID, providerID string) (*models.Appointment, error)
	ListByUser(ctx context.Context, userID, status string) ([]models.Appointment, error)
	ListByProvider(ctx context.Context, providerID, status string) ([]models.Appointment, error)
	// MarkUpcoming performs the conditional pending -> upcoming update.
	MarkUpcoming(ctx context.Context, appointmentID string) error
	// MarkCancelled performs the conditional pending -> cancelled update,
	// recording the cancelling actor and reason.
	MarkCancelled(ctx context.Context, appointmentID, actor, reason string) error
	// MarkElapsedPast promotes elapsed upcoming appointments to past and
	// returns the number of documents modified.
	MarkElapsedPast(ctx context.Context, today, now string) (int64, error)
	EnsureIndexes() error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{coll: database.DB().Collection("appointments")}
}
