package jobs

import (
	"context"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/scheduler"
	bookingService "hotel/internal/domains/booking/service"
	"hotel/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

const reconcilerJobName = "booking-payment-reconciler"

// Reconciler settles bookings whose guests paid but never returned from checkout.
type Reconciler struct {
	bookings bookingService.Booking
	cfg      *config.Config
	otel     otel.Otel
}

func NewReconciler(bookings bookingService.Booking, cfg *config.Config, otel otel.Otel) *Reconciler {
	return &Reconciler{
		bookings: bookings,
		cfg:      cfg,
		otel:     otel,
	}
}

func (r *Reconciler) Register(s scheduler.Scheduler) error {
	interval := time.Duration(r.cfg.Booking.ReconcileIntervalSeconds) * time.Second

	return s.Every(reconcilerJobName, interval, r.Run) //nolint:wrapcheck
}

// Run makes a single reconciliation pass. Failures are logged and retried on the next tick.
func (r *Reconciler) Run(ctx context.Context) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".ReconcilePayments")
	defer scope.End()

	if err := r.bookings.ReconcilePayments(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("job", reconcilerJobName).Msg("payment reconciliation incomplete")
	}
}
