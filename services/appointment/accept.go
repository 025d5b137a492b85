package appointment

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "soulspace/database/repository/appointment"
	paymentRepo "soulspace/database/repository/payment"
	"soulspace/models"
	"soulspace/services/notification"

	"go.uber.org/zap"
)

// Accept confirms a pending appointment. The settlement precondition is
// checked first: a card payment must already be paid, a cash payment must at
// least be recorded. The status flip, the wallet credit and the patient
// counter then commit as one unit, so a crash between them never leaves a
// confirmed consultation without its earnings.
func (s *DefaultAppointmentService) Accept(ctx context.Context, appointmentID, providerID string) (*models.AcceptResult, error) {
	appt, err := s.Appointments.GetByIDForProvider(ctx, appointmentID, providerID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, newNotFoundError("appointment", appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("accept appointment: %w", err)
	}
	if appt.Status != models.AppointmentPending {
		return nil, newInvalidStateError(appointmentID, models.AppointmentPending)
	}

	pay, err := s.Payments.GetLatestByAppointment(ctx, appointmentID)
	if errors.Is(err, paymentRepo.ErrNotFound) {
		return nil, newPaymentNotReadyError(appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("accept appointment: %w", err)
	}
	if !acceptablePayment(pay) {
		return nil, newPaymentNotReadyError(appointmentID)
	}

	var wallet *models.Wallet
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.Appointments.MarkUpcoming(ctx, appointmentID); err != nil {
			if errors.Is(err, appointmentRepo.ErrInvalidTransition) {
				return newInvalidStateError(appointmentID, models.AppointmentPending)
			}
			return fmt.Errorf("mark appointment upcoming: %w", err)
		}
		var creditErr error
		wallet, creditErr = s.Wallets.Credit(ctx, providerID, appt.TotalAmount)
		if creditErr != nil {
			return fmt.Errorf("credit wallet: %w", creditErr)
		}
		return s.Providers.IncrementTotalPatients(ctx, providerID)
	})
	if err != nil {
		return nil, err
	}

	appt.Status = models.AppointmentUpcoming

	if err := s.Notifier.NotifyUser(ctx, appt.UserID, notification.KindAppointmentAccepted, map[string]string{
		"appointment_id": appt.ID,
		"date":           appt.Date,
		"start":          appt.Start,
	}); err != nil {
		s.Logger.Warn("accept notification failed",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}

	s.Logger.Info("appointment accepted",
		zap.String("appointmentId", appt.ID),
		zap.String("providerId", providerID),
		zap.Int("credited", appt.TotalAmount))
	return &models.AcceptResult{Appointment: appt, Wallet: wallet}, nil
}

// acceptablePayment reports whether the latest payment record satisfies the
// accept precondition. Card must be settled up front; cash may stay pending
// until the consultation.
func acceptablePayment(p *models.Payment) bool {
	if p.Status == models.PaymentPaid {
		return true
	}
	return p.Method == models.PaymentMethodCash && p.Status == models.PaymentPending
}
