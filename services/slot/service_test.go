package slot

import (
	"context"
	"errors"
	"sync"
	"testing"

	slotRepo "soulspace/database/repository/slot"
	"soulspace/models"

	"go.uber.org/zap"
)

// memSlotRepo is an in-memory SlotRepository backed by a mutex, good enough
// to exercise the service rules without a running database.
type memSlotRepo struct {
	mu    sync.Mutex
	slots map[string]*models.Slot
}

func newMemSlotRepo() *memSlotRepo {
	return &memSlotRepo{slots: make(map[string]*models.Slot)}
}

func (r *memSlotRepo) Create(_ context.Context, slot *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *slot
	r.slots[slot.ID] = &cp
	return nil
}

func (r *memSlotRepo) GetByID(_ context.Context, slotID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memSlotRepo) ListAvailable(_ context.Context, providerID, date string) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if s.ProviderID == providerID && s.Date == date && !s.Reserved {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSlotRepo) ListByDateRange(_ context.Context, providerID, from, to string) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if s.ProviderID == providerID && s.Date >= from && s.Date < to {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSlotRepo) HasConflict(_ context.Context, providerID, date, start, end string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.ProviderID != providerID || s.Date != date {
			continue
		}
		if conflicts(s.Start, s.End, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memSlotRepo) Reserve(_ context.Context, slotID, providerID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok || s.ProviderID != providerID || s.Reserved {
		return nil, slotRepo.ErrUnavailable
	}
	s.Reserved = true
	cp := *s
	return &cp, nil
}

func (r *memSlotRepo) Release(_ context.Context, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.slots[slotID]; ok {
		s.Reserved = false
	}
	return nil
}

func (r *memSlotRepo) Delete(_ context.Context, slotID, providerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok || s.ProviderID != providerID {
		return slotRepo.ErrNotFound
	}
	if s.Reserved {
		return slotRepo.ErrReserved
	}
	delete(r.slots, slotID)
	return nil
}

func (r *memSlotRepo) EnsureIndexes() error { return nil }

func newTestSlotService() (*DefaultSlotService, *memSlotRepo) {
	repo := newMemSlotRepo()
	return &DefaultSlotService{Repo: repo, Logger: zap.NewNop()}, repo
}

func TestPublishRejectsBadInput(t *testing.T) {
	svc, _ := newTestSlotService()
	ctx := context.Background()

	cases := []struct {
		name             string
		date, start, end string
	}{
		{"bad date", "15-09-2026", "09:00", "10:00"},
		{"bad start", "2026-09-15", "9am", "10:00"},
		{"bad end", "2026-09-15", "09:00", "25:00"},
		{"start after end", "2026-09-15", "10:00", "09:00"},
		{"zero length", "2026-09-15", "09:00", "09:00"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Publish(ctx, "prov-1", c.date, c.start, c.end)
			var slotErr *SlotError
			if !errors.As(err, &slotErr) || slotErr.Code != CodeValidation {
				t.Fatalf("Publish(%s %s-%s) error = %v, want %s", c.date, c.start, c.end, err, CodeValidation)
			}
		})
	}
}

func TestPublishRejectsOverlapAndAdjacency(t *testing.T) {
	svc, _ := newTestSlotService()
	ctx := context.Background()

	if _, err := svc.Publish(ctx, "prov-1", "2026-09-15", "09:00", "10:00"); err != nil {
		t.Fatalf("first Publish: %v", err)
	}

	for _, c := range []struct{ start, end string }{
		{"09:30", "10:30"}, // overlap
		{"10:00", "11:00"}, // adjacent after
		{"08:00", "09:00"}, // adjacent before
	} {
		_, err := svc.Publish(ctx, "prov-1", "2026-09-15", c.start, c.end)
		var slotErr *SlotError
		if !errors.As(err, &slotErr) || slotErr.Code != CodeOverlap {
			t.Fatalf("Publish(%s-%s) error = %v, want %s", c.start, c.end, err, CodeOverlap)
		}
	}

	// Another provider is free to publish the same window.
	if _, err := svc.Publish(ctx, "prov-2", "2026-09-15", "09:00", "10:00"); err != nil {
		t.Fatalf("other provider Publish: %v", err)
	}
}

func TestRemoveReservedSlot(t *testing.T) {
	svc, repo := newTestSlotService()
	ctx := context.Background()

	created, err := svc.Publish(ctx, "prov-1", "2026-09-15", "09:00", "10:00")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, err := repo.Reserve(ctx, created.ID, "prov-1"); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	err = svc.Remove(ctx, "prov-1", created.ID)
	var slotErr *SlotError
	if !errors.As(err, &slotErr) || slotErr.Code != CodeBooked {
		t.Fatalf("Remove reserved slot error = %v, want %s", err, CodeBooked)
	}
}

func TestRemoveForeignSlotReadsAsNotFound(t *testing.T) {
	svc, _ := newTestSlotService()
	ctx := context.Background()

	created, err := svc.Publish(ctx, "prov-1", "2026-09-15", "09:00", "10:00")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	err = svc.Remove(ctx, "prov-2", created.ID)
	var slotErr *SlotError
	if !errors.As(err, &slotErr) || slotErr.Code != CodeNotFound {
		t.Fatalf("Remove foreign slot error = %v, want %s", err, CodeNotFound)
	}
}

func TestListByMonth(t *testing.T) {
	svc, _ := newTestSlotService()
	ctx := context.Background()

	for _, d := range []string{"2026-09-01", "2026-09-30", "2026-10-01"} {
		if _, err := svc.Publish(ctx, "prov-1", d, "09:00", "10:00"); err != nil {
			t.Fatalf("Publish(%s): %v", d, err)
		}
	}

	slots, err := svc.ListByMonth(ctx, "prov-1", "2026-09")
	if err != nil {
		t.Fatalf("ListByMonth: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("ListByMonth returned %d slots, want 2", len(slots))
	}

	if _, err := svc.ListByMonth(ctx, "prov-1", "2026-9"); err == nil {
		t.Fatal("ListByMonth accepted malformed month")
	}
}
