package notification

import (
	"context"
	"fmt"

	providerRepo "soulspace/database/repository/provider"
	userRepo "soulspace/database/repository/user"
	"soulspace/utils"

	"firebase.google.com/go/v4/messaging"
)

// DefaultNotificationService sends FCM pushes, resolving tokens through the
// party read models.
type DefaultNotificationService struct {
	Users     userRepo.UserRepository
	Providers providerRepo.ProviderRepository
}

var titles = map[string]string{
	KindAppointmentAccepted:  "Your appointment is confirmed",
	KindAppointmentDeclined:  "Your appointment was declined",
	KindAppointmentCancelled: "An appointment was cancelled",
	KindPaymentRecorded:      "Payment received for an appointment",
	KindRefundIssued:         "Your payment has been refunded",
}

func (s *DefaultNotificationService) NotifyUser(ctx context.Context, userID, kind string, data map[string]string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("NotifyUser: could not find user %s: %w", userID, err)
	}
	return send(ctx, u.FCMToken, kind, data)
}

func (s *DefaultNotificationService) NotifyProvider(ctx context.Context, providerID, kind string, data map[string]string) error {
	p, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		return fmt.Errorf("NotifyProvider: could not find provider %s: %w", providerID, err)
	}
	return send(ctx, p.FCMToken, kind, data)
}

func send(ctx context.Context, token, kind string, data map[string]string) error {
	if token == "" {
		// No push target registered; nothing to deliver.
		return nil
	}
	if data == nil {
		data = map[string]string{}
	}
	data["kind"] = kind

	title, ok := titles[kind]
	if !ok {
		title = "SoulSpace update"
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  data["body"],
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
