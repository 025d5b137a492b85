package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	providerRepo "soulspace/database/repository/provider"
	slotRepo "soulspace/database/repository/slot"
	"soulspace/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create books the given slot for the user. The slot reservation is a single
// conditional update, so two users racing for the same slot resolve to
// exactly one pending appointment. The appointment starts in pending and
// holds a snapshot of the slot time and price so later edits to the
// provider's calendar or rates never rewrite history.
func (s *DefaultAppointmentService) Create(ctx context.Context, userID, providerID, slotID string) (*models.Appointment, error) {
	provider, err := s.Providers.GetByID(ctx, providerID)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return nil, newNotFoundError("provider", providerID)
	}
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	if provider.Status != models.ProviderApproved {
		return nil, newProviderNotApprovedError(providerID)
	}

	breakdown := ComputeBreakdown(provider.ConsultationPrice)
	now := s.now().UTC()

	var appt *models.Appointment
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		slot, err := s.Slots.Reserve(ctx, slotID, providerID)
		if errors.Is(err, slotRepo.ErrUnavailable) {
			return newSlotUnavailableError(slotID)
		}
		if err != nil {
			return fmt.Errorf("reserve slot %s: %w", slotID, err)
		}

		if slotStartsBefore(slot, now) {
			// Hand the slot back before failing so the reservation does
			// not outlive the aborted booking.
			if relErr := s.Slots.Release(ctx, slotID); relErr != nil {
				s.Logger.Error("failed to release past slot",
					zap.String("slotId", slotID), zap.Error(relErr))
			}
			return newSlotInPastError(slotID)
		}

		appt = &models.Appointment{
			ID:            uuid.New().String(),
			UserID:        userID,
			ProviderID:    providerID,
			SlotID:        slot.ID,
			Date:          slot.Date,
			Start:         slot.Start,
			End:           slot.End,
			Price:         breakdown.Price,
			VAT:           breakdown.VAT,
			AfterHoursFee: breakdown.AfterHoursFee,
			Discount:      breakdown.Discount,
			TotalAmount:   breakdown.Total,
			Status:        models.AppointmentPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return s.Appointments.Insert(ctx, appt)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("appointment created",
		zap.String("appointmentId", appt.ID),
		zap.String("userId", userID),
		zap.String("providerId", providerID),
		zap.String("slotId", slotID))
	return appt, nil
}

// slotStartsBefore reports whether the slot's start moment is strictly
// before the given instant. Slot dates and clocks are zero-padded strings,
// so the comparison is lexical.
func slotStartsBefore(slot *models.Slot, instant time.Time) bool {
	date := instant.Format("2006-01-02")
	clock := instant.Format("15:04")
	if slot.Date != date {
		return slot.Date < date
	}
	return slot.Start < clock
}
