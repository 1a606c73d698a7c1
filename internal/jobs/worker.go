package jobs

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/scheduler"

	"github.com/rs/zerolog/log"
)

// Worker runs the scheduled reconciler and the booking event consumer until ctx is done.
type Worker struct {
	client     kafka.Client
	scheduler  scheduler.Scheduler
	reconciler *Reconciler
	notifier   *Notifier
	cfg        *config.Config
}

func NewWorker(client kafka.Client, scheduler scheduler.Scheduler, reconciler *Reconciler, notifier *Notifier, cfg *config.Config) *Worker {
	return &Worker{
		client:     client,
		scheduler:  scheduler,
		reconciler: reconciler,
		notifier:   notifier,
		cfg:        cfg,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	if err := w.reconciler.Register(w.scheduler); err != nil {
		return fmt.Errorf("failed to register reconciler: %w", err)
	}

	w.scheduler.Start()

	defer func() {
		if err := w.client.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close kafka client")
		}
	}()

	defer func() {
		if err := w.scheduler.Shutdown(); err != nil {
			log.Error().Err(err).Msg("failed to shut down scheduler")
		}
	}()

	log.Info().Str("topic", w.cfg.Kafka.Topics.BookingEvents).Msg("worker consuming booking events")

	if err := w.client.Consume(ctx, w.cfg.Kafka.ConsumerGroup, w.cfg.Kafka.Topics.BookingEvents, w.notifier.Handle); err != nil {
		return fmt.Errorf("failed to consume booking events: %w", err)
	}

	return nil
}
