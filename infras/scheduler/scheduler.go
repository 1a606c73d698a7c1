package scheduler

//go:generate go run go.uber.org/mock/mockgen -source=./scheduler.go -destination=./mocks/scheduler_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// Task receives a context that is cancelled when the scheduler shuts down.
type Task func(ctx context.Context)

type Scheduler interface {
	Every(name string, interval time.Duration, task Task) error
	Start()
	Shutdown() error
}

type schedulerImpl struct {
	inner  gocron.Scheduler
	ctx    context.Context
	cancel context.CancelFunc
}

func New() (Scheduler, error) {
	inner, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &schedulerImpl{
		inner:  inner,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Every runs task on a fixed interval, starting immediately. A run that is still going
// when the next tick arrives causes that tick to be skipped.
func (s *schedulerImpl) Every(name string, interval time.Duration, task Task) error {
	job, err := s.inner.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			started := time.Now()

			task(s.ctx)

			log.Debug().Str("job", name).Dur("took", time.Since(started)).Msg("Scheduled job finished")
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}

	log.Info().Str("job", name).Str("id", job.ID().String()).Dur("interval", interval).Msg("Scheduled job registered")

	return nil
}

func (s *schedulerImpl) Start() {
	s.inner.Start()
}

func (s *schedulerImpl) Shutdown() error {
	s.cancel()

	if err := s.inner.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown scheduler: %w", err)
	}

	return nil
}
