package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appointmentRepo "soulspace/database/repository/appointment"
	paymentRepo "soulspace/database/repository/payment"
	"soulspace/models"
	"soulspace/services/notification"

	"go.uber.org/zap"
)

// Decline rejects a pending appointment. The slot goes back on the market
// and any recorded payment is compensated.
func (s *DefaultAppointmentService) Decline(ctx context.Context, appointmentID, providerID, reason string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByIDForProvider(ctx, appointmentID, providerID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, newNotFoundError("appointment", appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("decline appointment: %w", err)
	}

	if err := s.cancelPending(ctx, appt, models.ActorProvider, reason); err != nil {
		return nil, err
	}

	if err := s.Notifier.NotifyUser(ctx, appt.UserID, notification.KindAppointmentDeclined, map[string]string{
		"appointment_id": appt.ID,
		"date":           appt.Date,
		"start":          appt.Start,
		"reason":         reason,
	}); err != nil {
		s.Logger.Warn("decline notification failed",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
	return appt, nil
}

// CancelByUser cancels the requester's own pending appointment. A reason is
// mandatory.
func (s *DefaultAppointmentService) CancelByUser(ctx context.Context, appointmentID, userID, reason string) (*models.Appointment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, newInvalidCancelReasonError()
	}

	appt, err := s.Appointments.GetByIDForUser(ctx, appointmentID, userID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, newNotFoundError("appointment", appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	if err := s.cancelPending(ctx, appt, models.ActorUser, reason); err != nil {
		return nil, err
	}

	if err := s.Notifier.NotifyProvider(ctx, appt.ProviderID, notification.KindAppointmentCancelled, map[string]string{
		"appointment_id": appt.ID,
		"date":           appt.Date,
		"start":          appt.Start,
		"reason":         reason,
	}); err != nil {
		s.Logger.Warn("cancel notification failed",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
	return appt, nil
}

// CancelByProvider cancels a pending appointment from the provider side. A
// reason is mandatory.
func (s *DefaultAppointmentService) CancelByProvider(ctx context.Context, appointmentID, providerID, reason string) (*models.Appointment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, newInvalidCancelReasonError()
	}

	appt, err := s.Appointments.GetByIDForProvider(ctx, appointmentID, providerID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, newNotFoundError("appointment", appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	if err := s.cancelPending(ctx, appt, models.ActorProvider, reason); err != nil {
		return nil, err
	}

	if err := s.Notifier.NotifyUser(ctx, appt.UserID, notification.KindAppointmentCancelled, map[string]string{
		"appointment_id": appt.ID,
		"date":           appt.Date,
		"start":          appt.Start,
		"reason":         reason,
	}); err != nil {
		s.Logger.Warn("cancel notification failed",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
	return appt, nil
}

// cancelPending is the shared pending -> cancelled core. The status flip and
// the slot release commit together; the payment compensation runs after the
// commit because it talks to an external gateway and must not hold the
// transaction open.
func (s *DefaultAppointmentService) cancelPending(ctx context.Context, appt *models.Appointment, actor, reason string) error {
	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.Appointments.MarkCancelled(ctx, appt.ID, actor, reason); err != nil {
			if errors.Is(err, appointmentRepo.ErrInvalidTransition) {
				return newInvalidStateError(appt.ID, models.AppointmentPending)
			}
			return fmt.Errorf("mark appointment cancelled: %w", err)
		}
		return s.Slots.Release(ctx, appt.SlotID)
	})
	if err != nil {
		return err
	}

	appt.Status = models.AppointmentCancelled
	appt.CancelledBy = actor
	appt.CancelReason = reason

	s.compensatePayment(ctx, appt)

	s.Logger.Info("appointment cancelled",
		zap.String("appointmentId", appt.ID),
		zap.String("actor", actor))
	return nil
}

// compensatePayment settles the money side of a cancellation: paid payments
// are refunded, unsettled cash payments are marked failed. Failures here are
// logged for manual follow-up; the cancellation itself has already
// committed.
func (s *DefaultAppointmentService) compensatePayment(ctx context.Context, appt *models.Appointment) {
	pay, err := s.Payments.GetLatestByAppointment(ctx, appt.ID)
	if errors.Is(err, paymentRepo.ErrNotFound) {
		return
	}
	if err != nil {
		s.Logger.Error("payment lookup failed during cancellation",
			zap.String("appointmentId", appt.ID), zap.Error(err))
		return
	}

	switch {
	case pay.Status == models.PaymentPaid:
		if err := s.PaymentSvc.MarkRefunded(ctx, pay); err != nil {
			s.Logger.Error("refund failed during cancellation",
				zap.String("appointmentId", appt.ID),
				zap.String("paymentId", pay.ID),
				zap.Error(err))
		}
	case pay.Status == models.PaymentPending:
		if err := s.PaymentSvc.MarkFailed(ctx, pay); err != nil {
			s.Logger.Error("payment fail mark failed during cancellation",
				zap.String("appointmentId", appt.ID),
				zap.String("paymentId", pay.ID),
				zap.Error(err))
		}
	}
}
