package appointment

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "soulspace/database/repository/appointment"
	providerRepo "soulspace/database/repository/provider"
	userRepo "soulspace/database/repository/user"
	"soulspace/models"

	"go.uber.org/zap"
)

// ListForUser returns the requester's appointments, newest first, optionally
// filtered by lifecycle status.
func (s *DefaultAppointmentService) ListForUser(ctx context.Context, userID, status string) ([]models.UserAppointmentItem, error) {
	if status != "" && !models.ValidAppointmentStatus(status) {
		return nil, newInvalidStatusFilterError(status)
	}

	appts, err := s.Appointments.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	items := make([]models.UserAppointmentItem, 0, len(appts))
	for _, a := range appts {
		items = append(items, models.UserAppointmentItem{
			ID:       a.ID,
			Date:     a.Date,
			Start:    a.Start,
			Status:   a.Status,
			Provider: s.providerSummary(ctx, a.ProviderID),
		})
	}
	return items, nil
}

// GetForUser returns the requester-facing detail view. Ownership is part of
// the lookup, so a foreign appointment id reads as not found.
func (s *DefaultAppointmentService) GetForUser(ctx context.Context, appointmentID, userID string) (*models.UserAppointmentDetail, error) {
	appt, err := s.Appointments.GetByIDForUser(ctx, appointmentID, userID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, newNotFoundError("appointment", appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}

	detail := &models.UserAppointmentDetail{Appointment: *appt}
	if provider, err := s.Providers.GetByID(ctx, appt.ProviderID); err == nil {
		detail.Provider = models.ProviderSummary{
			FullName:   provider.FullName,
			AvatarURL:  provider.AvatarURL,
			ClinicName: provider.ClinicName,
		}
		detail.ClinicAddress = provider.ClinicAddress
	} else {
		s.Logger.Warn("provider read model missing",
			zap.String("providerId", appt.ProviderID), zap.Error(err))
	}
	return detail, nil
}

// ListForProvider returns the provider's appointments, newest first,
// optionally filtered by lifecycle status.
func (s *DefaultAppointmentService) ListForProvider(ctx context.Context, providerID, status string) ([]models.ProviderAppointmentItem, error) {
	if status != "" && !models.ValidAppointmentStatus(status) {
		return nil, newInvalidStatusFilterError(status)
	}

	appts, err := s.Appointments.ListByProvider(ctx, providerID, status)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	items := make([]models.ProviderAppointmentItem, 0, len(appts))
	for _, a := range appts {
		items = append(items, models.ProviderAppointmentItem{
			ID:     a.ID,
			Date:   a.Date,
			Start:  a.Start,
			Status: a.Status,
			User:   s.userSummary(ctx, a.UserID),
		})
	}
	return items, nil
}

// GetForProvider returns the provider-facing detail view with the full price
// breakdown.
func (s *DefaultAppointmentService) GetForProvider(ctx context.Context, appointmentID, providerID string) (*models.ProviderAppointmentDetail, error) {
	appt, err := s.Appointments.GetByIDForProvider(ctx, appointmentID, providerID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, newNotFoundError("appointment", appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}

	return &models.ProviderAppointmentDetail{
		Appointment: *appt,
		User:        s.userSummary(ctx, appt.UserID),
	}, nil
}

// providerSummary resolves the counterpart provider for a list row. A missing
// read model degrades to an empty summary rather than failing the list.
func (s *DefaultAppointmentService) providerSummary(ctx context.Context, providerID string) models.ProviderSummary {
	provider, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		if !errors.Is(err, providerRepo.ErrNotFound) {
			s.Logger.Warn("provider read model lookup failed",
				zap.String("providerId", providerID), zap.Error(err))
		}
		return models.ProviderSummary{}
	}
	return models.ProviderSummary{
		FullName:   provider.FullName,
		AvatarURL:  provider.AvatarURL,
		ClinicName: provider.ClinicName,
	}
}

func (s *DefaultAppointmentService) userSummary(ctx context.Context, userID string) models.UserSummary {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, userRepo.ErrNotFound) {
			s.Logger.Warn("user read model lookup failed",
				zap.String("userId", userID), zap.Error(err))
		}
		return models.UserSummary{}
	}
	return models.UserSummary{
		FullName:  user.Username,
		AvatarURL: user.AvatarURL,
		Phone:     user.Phone,
	}
}
