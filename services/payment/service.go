package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "soulspace/database/repository/appointment"
	paymentRepo "soulspace/database/repository/payment"
	"soulspace/models"
	"soulspace/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService records settlements for pending appointments and performs
// the compensating status marks the booking engine triggers on decline and
// cancel.
type PaymentService interface {
	Record(ctx context.Context, userID, appointmentID, method, paymentMethodToken string) (*models.Payment, error)
	MarkRefunded(ctx context.Context, payment *models.Payment) error
	MarkFailed(ctx context.Context, payment *models.Payment) error
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Payments     paymentRepo.PaymentRepository
	Appointments appointmentRepo.AppointmentRepository
	Gateway      Gateway
	Notifier     notification.NotificationService
	Logger       *zap.Logger
}

// Record creates the authoritative payment record for a pending appointment.
// Card settles instantly through the gateway; cash stays pending until the
// consultation.
func (s *DefaultPaymentService) Record(ctx context.Context, userID, appointmentID, method, paymentMethodToken string) (*models.Payment, error) {
	if method != models.PaymentMethodCard && method != models.PaymentMethodCash {
		return nil, newInvalidMethodError(method)
	}

	appt, err := s.Appointments.GetByIDForUser(ctx, appointmentID, userID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, newNotFoundError(appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	if appt.Status != models.AppointmentPending {
		return nil, newNotPendingError(appointmentID)
	}

	latest, err := s.Payments.GetLatestByAppointment(ctx, appointmentID)
	if err != nil && !errors.Is(err, paymentRepo.ErrNotFound) {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	if latest != nil && latest.Status == models.PaymentPaid {
		return nil, newAlreadySettledError(appointmentID)
	}

	now := time.Now().UTC()
	payment := &models.Payment{
		ID:            uuid.New().String(),
		AppointmentID: appt.ID,
		UserID:        appt.UserID,
		ProviderID:    appt.ProviderID,
		Method:        method,
		Amount:        appt.TotalAmount,
		Status:        models.PaymentPending,
		CreatedAt:     now,
	}

	if method == models.PaymentMethodCard {
		reference, err := s.Gateway.Charge(ctx, ChargeRequest{
			Amount:        int64(appt.TotalAmount),
			Currency:      "vnd",
			PaymentMethod: paymentMethodToken,
			Description:   fmt.Sprintf("Consultation %s %s-%s", appt.Date, appt.Start, appt.End),
			Idempotency:   payment.ID,
		})
		if err != nil {
			return nil, newGatewayDeclinedError(err)
		}
		payment.Status = models.PaymentPaid
		payment.TransactionCode = reference
		payment.PaidAt = &now
	}

	if err := s.Payments.Insert(ctx, payment); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	if err := s.Notifier.NotifyProvider(ctx, appt.ProviderID, notification.KindPaymentRecorded, map[string]string{
		"appointment_id": appt.ID,
		"method":         method,
		"amount":         fmt.Sprintf("%d", payment.Amount),
	}); err != nil {
		s.Logger.Warn("payment notification failed",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}

	return payment, nil
}

// MarkRefunded marks a paid payment refunded and asks the gateway to return
// the money. The status mark is authoritative; a failed gateway refund is
// logged for manual follow-up, not rolled back.
func (s *DefaultPaymentService) MarkRefunded(ctx context.Context, payment *models.Payment) error {
	if err := s.Payments.UpdateStatus(ctx, payment.ID, models.PaymentRefunded); err != nil {
		return fmt.Errorf("mark payment refunded: %w", err)
	}

	if payment.Method == models.PaymentMethodCard && payment.TransactionCode != "" {
		if err := s.Gateway.Refund(ctx, payment.TransactionCode); err != nil {
			s.Logger.Error("gateway refund failed, payment marked refunded",
				zap.String("paymentId", payment.ID),
				zap.String("appointmentId", payment.AppointmentID),
				zap.Error(err))
		}
	}

	if err := s.Notifier.NotifyUser(ctx, payment.UserID, notification.KindRefundIssued, map[string]string{
		"appointment_id": payment.AppointmentID,
		"amount":         fmt.Sprintf("%d", payment.Amount),
	}); err != nil {
		s.Logger.Warn("refund notification failed",
			zap.String("paymentId", payment.ID), zap.Error(err))
	}
	return nil
}

// MarkFailed marks an unsettled deferred payment failed.
func (s *DefaultPaymentService) MarkFailed(ctx context.Context, payment *models.Payment) error {
	if err := s.Payments.UpdateStatus(ctx, payment.ID, models.PaymentFailed); err != nil {
		return fmt.Errorf("mark payment failed: %w", err)
	}
	return nil
}
