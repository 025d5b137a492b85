package appointment

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// PromoteElapsed moves every upcoming appointment whose end has passed to
// past. Two classes of documents qualify: appointments on an earlier date,
// and appointments today whose end clock is behind the current time. The
// update filters on status, so repeated runs over the same window are
// no-ops.
func (s *DefaultAppointmentService) PromoteElapsed(ctx context.Context) (int64, error) {
	now := s.now().UTC()
	today := now.Format("2006-01-02")
	clock := now.Format("15:04")

	modified, err := s.Appointments.MarkElapsedPast(ctx, today, clock)
	if err != nil {
		return 0, fmt.Errorf("promote elapsed appointments: %w", err)
	}
	if modified > 0 {
		s.Logger.Info("elapsed appointments promoted",
			zap.Int64("count", modified),
			zap.String("today", today),
			zap.String("clock", clock))
	}
	return modified, nil
}
