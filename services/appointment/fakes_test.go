package appointment

import (
	"context"
	"sync"

	appointmentRepo "soulspace/database/repository/appointment"
	paymentRepo "soulspace/database/repository/payment"
	providerRepo "soulspace/database/repository/provider"
	slotRepo "soulspace/database/repository/slot"
	userRepo "soulspace/database/repository/user"
	walletRepo "soulspace/database/repository/wallet"
	"soulspace/models"
)

// In-memory repository doubles. Each guards its map with a mutex so the
// concurrency tests exercise real interleavings; the slot reservation in
// particular is a genuine compare-and-set under the lock.

type memSlots struct {
	mu    sync.Mutex
	slots map[string]*models.Slot
}

func newMemSlots() *memSlots { return &memSlots{slots: make(map[string]*models.Slot)} }

func (r *memSlots) add(s models.Slot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := s
	r.slots[s.ID] = &cp
}

func (r *memSlots) reserved(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	return ok && s.Reserved
}

func (r *memSlots) Create(_ context.Context, s *models.Slot) error {
	r.add(*s)
	return nil
}

func (r *memSlots) GetByID(_ context.Context, id string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memSlots) ListAvailable(_ context.Context, providerID, date string) ([]models.Slot, error) {
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

func (r *memSlots) ListByDateRange(_ context.Context, providerID, from, to string) ([]models.Slot, error) {
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

func (r *memSlots) HasConflict(_ context.Context, _, _, _, _ string) (bool, error) {
	return false, nil
}

func (r *memSlots) Reserve(_ context.Context, slotID, providerID string) (*models.Slot, error) {
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

func (r *memSlots) Release(_ context.Context, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.slots[slotID]; ok {
		s.Reserved = false
	}
	return nil
}

func (r *memSlots) Delete(_ context.Context, slotID, providerID string) error {
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

func (r *memSlots) EnsureIndexes() error { return nil }

type memAppointments struct {
	mu    sync.Mutex
	appts map[string]*models.Appointment
}

func newMemAppointments() *memAppointments {
	return &memAppointments{appts: make(map[string]*models.Appointment)}
}

func (r *memAppointments) get(id string) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.appts[id]; ok {
		cp := *a
		return &cp
	}
	return nil
}

func (r *memAppointments) Insert(_ context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.appts[a.ID] = &cp
	return nil
}

func (r *memAppointments) GetByIDForUser(_ context.Context, id, userID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok || a.UserID != userID {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAppointments) GetByIDForProvider(_ context.Context, id, providerID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok || a.ProviderID != providerID {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAppointments) ListByUser(_ context.Context, userID, status string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.UserID == userID && (status == "" || a.Status == status) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAppointments) ListByProvider(_ context.Context, providerID, status string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.ProviderID == providerID && (status == "" || a.Status == status) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAppointments) MarkUpcoming(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok || a.Status != models.AppointmentPending {
		return appointmentRepo.ErrInvalidTransition
	}
	a.Status = models.AppointmentUpcoming
	return nil
}

func (r *memAppointments) MarkCancelled(_ context.Context, id, actor, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok || a.Status != models.AppointmentPending {
		return appointmentRepo.ErrInvalidTransition
	}
	a.Status = models.AppointmentCancelled
	a.CancelledBy = actor
	a.CancelReason = reason
	return nil
}

func (r *memAppointments) MarkElapsedPast(_ context.Context, today, now string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.appts {
		if a.Status != models.AppointmentUpcoming {
			continue
		}
		if a.Date < today || (a.Date == today && a.End < now) {
			a.Status = models.AppointmentPast
			n++
		}
	}
	return n, nil
}

func (r *memAppointments) EnsureIndexes() error { return nil }

type memPayments struct {
	mu       sync.Mutex
	payments []*models.Payment
}

func (r *memPayments) add(p models.Payment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := p
	r.payments = append(r.payments, &cp)
}

func (r *memPayments) Insert(_ context.Context, p *models.Payment) error {
	r.add(*p)
	return nil
}

func (r *memPayments) GetLatestByAppointment(_ context.Context, appointmentID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.payments) - 1; i >= 0; i-- {
		if r.payments[i].AppointmentID == appointmentID {
			cp := *r.payments[i]
			return &cp, nil
		}
	}
	return nil, paymentRepo.ErrNotFound
}

func (r *memPayments) UpdateStatus(_ context.Context, paymentID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.ID == paymentID {
			p.Status = status
			return nil
		}
	}
	return paymentRepo.ErrNotFound
}

func (r *memPayments) EnsureIndexes() error { return nil }

type memWallets struct {
	mu      sync.Mutex
	wallets map[string]*models.Wallet
}

func newMemWallets() *memWallets { return &memWallets{wallets: make(map[string]*models.Wallet)} }

func (r *memWallets) Credit(_ context.Context, providerID string, amount int) (*models.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[providerID]
	if !ok {
		w = &models.Wallet{ProviderID: providerID}
		r.wallets[providerID] = w
	}
	w.Balance += amount
	w.TotalEarned += amount
	cp := *w
	return &cp, nil
}

func (r *memWallets) GetByProviderID(_ context.Context, providerID string) (*models.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[providerID]
	if !ok {
		return nil, walletRepo.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *memWallets) EnsureIndexes() error { return nil }

type memProviders struct {
	mu        sync.Mutex
	providers map[string]*models.Provider
}

func newMemProviders() *memProviders {
	return &memProviders{providers: make(map[string]*models.Provider)}
}

func (r *memProviders) add(p models.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := p
	r.providers[p.ID] = &cp
}

func (r *memProviders) GetByID(_ context.Context, providerID string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProviders) IncrementTotalPatients(_ context.Context, providerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.TotalPatients++
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUsers() *memUsers { return &memUsers{users: make(map[string]*models.User)} }

func (r *memUsers) add(u models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := u
	r.users[u.ID] = &cp
}

func (r *memUsers) GetByID(_ context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// passthroughTx runs the unit of work directly. The engine's compensating
// releases keep the end state identical to an aborted transaction.
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingNotifier captures every push instead of sending it.
type recordingNotifier struct {
	mu    sync.Mutex
	kinds []string
}

func (n *recordingNotifier) record(kind string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, kind)
}

func (n *recordingNotifier) NotifyUser(_ context.Context, _, kind string, _ map[string]string) error {
	n.record(kind)
	return nil
}

func (n *recordingNotifier) NotifyProvider(_ context.Context, _, kind string, _ map[string]string) error {
	n.record(kind)
	return nil
}

// recordingOrchestrator captures compensation calls from the engine.
type recordingOrchestrator struct {
	mu       sync.Mutex
	refunded []string
	failed   []string
}

func (o *recordingOrchestrator) Record(_ context.Context, _, _, _, _ string) (*models.Payment, error) {
	return nil, nil
}

func (o *recordingOrchestrator) MarkRefunded(_ context.Context, p *models.Payment) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.refunded = append(o.refunded, p.ID)
	return nil
}

func (o *recordingOrchestrator) MarkFailed(_ context.Context, p *models.Payment) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed = append(o.failed, p.ID)
	return nil
}
