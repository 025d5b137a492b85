// File: cron/sweeper.go
package cron

import (
	"context"
	"fmt"

	"soulspace/config"
	"soulspace/services/appointment"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeStatusSweep = "appointment:status_sweep"

// Sweeper owns the periodic status sweep: a scheduler enqueues the sweep
// task on a fixed interval and a worker executes it. Both ride the same
// Redis queue, so multiple app instances share one sweep per tick instead of
// racing.
type Sweeper struct {
	scheduler *asynq.Scheduler
	server    *asynq.Server
	mux       *asynq.ServeMux
	logger    *zap.Logger
}

// NewSweeper wires the scheduler and worker against the booking engine.
func NewSweeper(engine appointment.AppointmentService, logger *zap.Logger) *Sweeper {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweeperDB,
	}

	scheduler := asynq.NewScheduler(redisOpts, nil)
	server := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{"default": 1},
	})

	s := &Sweeper{
		scheduler: scheduler,
		server:    server,
		logger:    logger,
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeStatusSweep, func(ctx context.Context, _ *asynq.Task) error {
		if _, err := engine.PromoteElapsed(ctx); err != nil {
			logger.Error("status sweep failed", zap.Error(err))
			return err
		}
		return nil
	})
	s.mux = mux
	return s
}

// Start registers the periodic sweep entry and launches the scheduler and
// worker in the background.
func (s *Sweeper) Start() error {
	cronspec := fmt.Sprintf("@every %dm", config.AppConfig.SweepIntervalMinutes)
	if _, err := s.scheduler.Register(cronspec, asynq.NewTask(TypeStatusSweep, nil)); err != nil {
		return fmt.Errorf("register status sweep: %w", err)
	}

	if err := s.scheduler.Start(); err != nil {
		return fmt.Errorf("start sweep scheduler: %w", err)
	}

	go func() {
		s.logger.Info("status sweep worker starting", zap.String("interval", cronspec))
		if err := s.server.Run(s.mux); err != nil {
			s.logger.Error("status sweep worker stopped", zap.Error(err))
		}
	}()
	return nil
}

// Shutdown stops the scheduler and drains the worker.
func (s *Sweeper) Shutdown() {
	s.scheduler.Shutdown()
	s.server.Shutdown()
}
