package slot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	slotRepo "soulspace/database/repository/slot"
	"soulspace/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const availabilityCacheTTL = 30 * time.Second

// SlotService manages a provider's published consultation slots.
type SlotService interface {
	Publish(ctx context.Context, providerID, date, start, end string) (*models.Slot, error)
	ListAvailable(ctx context.Context, providerID, date string) ([]models.Slot, error)
	ListByMonth(ctx context.Context, providerID, month string) ([]models.Slot, error)
	Remove(ctx context.Context, providerID, slotID string) error
}

// DefaultSlotService implements SlotService.
type DefaultSlotService struct {
	Repo   slotRepo.SlotRepository
	Cache  *redis.Client
	Logger *zap.Logger
}

func (s *DefaultSlotService) Publish(ctx context.Context, providerID, date, start, end string) (*models.Slot, error) {
	if !validDate(date) {
		return nil, newValidationError("date must be YYYY-MM-DD")
	}
	if !validClock(start) || !validClock(end) {
		return nil, newValidationError("start and end must be HH:MM")
	}
	if start >= end {
		return nil, newValidationError("start must be before end")
	}

	conflict, err := s.Repo.HasConflict(ctx, providerID, date, start, end)
	if err != nil {
		return nil, fmt.Errorf("publish slot: %w", err)
	}
	if conflict {
		return nil, newOverlapError(date, start, end)
	}

	slot := &models.Slot{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		Date:       date,
		Start:      start,
		End:        end,
		Reserved:   false,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("publish slot: %w", err)
	}
	s.invalidateAvailability(ctx, providerID, date)
	return slot, nil
}

func (s *DefaultSlotService) ListAvailable(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	if !validDate(date) {
		return nil, newValidationError("date must be YYYY-MM-DD")
	}

	key := availabilityCacheKey(providerID, date)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var slots []models.Slot
			if err := json.Unmarshal([]byte(cached), &slots); err == nil {
				return slots, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.Logger.Warn("slot availability cache read failed", zap.Error(err))
		}
	}

	slots, err := s.Repo.ListAvailable(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}

	if s.Cache != nil {
		if data, err := json.Marshal(slots); err == nil {
			if err := s.Cache.Set(ctx, key, data, availabilityCacheTTL).Err(); err != nil {
				s.Logger.Warn("slot availability cache write failed", zap.Error(err))
			}
		}
	}
	return slots, nil
}

func (s *DefaultSlotService) ListByMonth(ctx context.Context, providerID, month string) ([]models.Slot, error) {
	if !validMonth(month) {
		return nil, newValidationError("month must be YYYY-MM")
	}
	from, to := monthRange(month)
	slots, err := s.Repo.ListByDateRange(ctx, providerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list slots by month: %w", err)
	}
	return slots, nil
}

func (s *DefaultSlotService) Remove(ctx context.Context, providerID, slotID string) error {
	slot, err := s.Repo.GetByID(ctx, slotID)
	if errors.Is(err, slotRepo.ErrNotFound) {
		return newNotFoundError(slotID)
	}
	if err != nil {
		return fmt.Errorf("remove slot: %w", err)
	}

	err = s.Repo.Delete(ctx, slotID, providerID)
	switch {
	case errors.Is(err, slotRepo.ErrReserved):
		return newBookedError(slotID)
	case errors.Is(err, slotRepo.ErrNotFound):
		return newNotFoundError(slotID)
	case err != nil:
		return fmt.Errorf("remove slot: %w", err)
	}

	s.invalidateAvailability(ctx, slot.ProviderID, slot.Date)
	return nil
}

func (s *DefaultSlotService) invalidateAvailability(ctx context.Context, providerID, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, availabilityCacheKey(providerID, date)).Err(); err != nil {
		s.Logger.Warn("slot availability cache invalidation failed",
			zap.String("providerId", providerID), zap.String("date", date), zap.Error(err))
	}
}

func availabilityCacheKey(providerID, date string) string {
	return fmt.Sprintf("slots:available:%s:%s", providerID, date)
}
