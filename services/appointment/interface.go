package appointment

import (
	"context"
	"time"

	"soulspace/database"
	appointmentRepo "soulspace/database/repository/appointment"
	paymentRepo "soulspace/database/repository/payment"
	providerRepo "soulspace/database/repository/provider"
	slotRepo "soulspace/database/repository/slot"
	userRepo "soulspace/database/repository/user"
	walletRepo "soulspace/database/repository/wallet"
	"soulspace/models"
	"soulspace/services/notification"
	"soulspace/services/payment"

	"go.uber.org/zap"
)

// AppointmentService is the booking state machine. Every operation takes the
// authenticated actor explicitly; nothing is read from ambient request
// state.
type AppointmentService interface {
	Create(ctx context.Context, userID, providerID, slotID string) (*models.Appointment, error)
	Accept(ctx context.Context, appointmentID, providerID string) (*models.AcceptResult, error)
	Decline(ctx context.Context, appointmentID, providerID, reason string) (*models.Appointment, error)
	CancelByUser(ctx context.Context, appointmentID, userID, reason string) (*models.Appointment, error)
	CancelByProvider(ctx context.Context, appointmentID, providerID, reason string) (*models.Appointment, error)

	ListForUser(ctx context.Context, userID, status string) ([]models.UserAppointmentItem, error)
	GetForUser(ctx context.Context, appointmentID, userID string) (*models.UserAppointmentDetail, error)
	ListForProvider(ctx context.Context, providerID, status string) ([]models.ProviderAppointmentItem, error)
	GetForProvider(ctx context.Context, appointmentID, providerID string) (*models.ProviderAppointmentDetail, error)

	// PromoteElapsed is the sweeper body: upcoming appointments whose time
	// has passed move to past. Returns the number promoted.
	PromoteElapsed(ctx context.Context) (int64, error)
}

// DefaultAppointmentService implements AppointmentService over the entity
// repositories and the transactional unit of work.
type DefaultAppointmentService struct {
	Appointments appointmentRepo.AppointmentRepository
	Slots        slotRepo.SlotRepository
	Payments     paymentRepo.PaymentRepository
	Wallets      walletRepo.WalletRepository
	Providers    providerRepo.ProviderRepository
	Users        userRepo.UserRepository
	Tx           database.TxRunner
	PaymentSvc   payment.PaymentService
	Notifier     notification.NotificationService
	Logger       *zap.Logger

	// Clock allows tests to pin the booking clock; nil means time.Now.
	Clock func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
