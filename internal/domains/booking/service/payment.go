package service

import (
	"context"
	"errors"
	"fmt"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const reconcileBatchSize = 100

// ConfirmPayment handles the return from checkout. The provider is asked directly whether
// the session was paid; the client's word is never taken for it.
func (s *serviceImpl) ConfirmPayment(ctx context.Context, actor gModel.AuthContext, req dto.ConfirmPaymentRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return res, model.ErrBookingNotFound // nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, model.ErrBookingNotFound // nolint:wrapcheck
	}

	if !canAct(actor, booking) {
		return res, model.ErrForbidden // nolint:wrapcheck
	}

	switch booking.SessionID() {
	case constant.Empty:
		return res, model.ErrNoCheckoutSession // nolint:wrapcheck
	case req.SessionID:
	default:
		return res, model.ErrSessionMismatch // nolint:wrapcheck
	}

	if booking.StatusID == model.StatusConfirmed {
		res.FromModel(booking)

		return visible(actor, res)
	}

	if booking.StatusID != model.StatusPending {
		return res, model.ErrBookingClosed // nolint:wrapcheck
	}

	session, err := s.payment.GetCheckoutSession(ctx, req.SessionID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to retrieve checkout session")

		return res, model.ErrPaymentProviderDown // nolint:wrapcheck
	}

	if session.BookingID != constant.Empty && session.BookingID != booking.ID {
		return res, model.ErrSessionMismatch // nolint:wrapcheck
	}

	if !session.IsPaid() {
		return res, model.ErrPaymentPending // nolint:wrapcheck
	}

	system := gModel.SystemActor()

	updated, previous, err := s.transition(ctx, system, id, model.StatusConfirmed, model.NotePaymentConfirmed, session.ID)
	if err != nil {
		return res, wrapError(err, "failed to confirm booking")
	}

	event := model.NewEvent(model.EventStatusChanged, updated, system.UserID, timezone.Now())
	event.PreviousStatus = previous.String()
	s.afterChange(ctx, event)

	res.FromModel(updated)

	return visible(actor, res)
}

// ReconcilePayments settles pending bookings whose guests never came back from checkout:
// paid sessions are confirmed, expired ones cancelled. Bookings younger than the grace
// period are left to the return path.
func (s *serviceImpl) ReconcilePayments(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReconcilePayments")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cutoff := timezone.Now().Add(-time.Duration(s.cfg.Booking.PendingGraceMinutes) * time.Minute)

	params := gDto.QueryParams{
		Limit:   reconcileBatchSize,
		SortBy:  defaultSort,
		SortDir: gDto.SortDirAsc,
	}

	pending, err := s.repo.GetAll(ctx, params, pendingPaymentFilter(cutoff))
	if err != nil {
		log.Error().Err(err).Msg("failed to get pending bookings")

		return fmt.Errorf("failed to get pending bookings: %w", err)
	}

	scope.SetAttribute("reconcile.pending", len(pending))

	system := gModel.SystemActor()

	var errs []error

	for _, booking := range pending {
		session, err := s.payment.GetCheckoutSession(ctx, booking.SessionID())
		if err != nil {
			errs = append(errs, fmt.Errorf("booking %s: %w", booking.ID, err))

			continue
		}

		var (
			to    model.Status
			note  string
			extra string
		)

		switch {
		case session.IsPaid():
			to, note, extra = model.StatusConfirmed, model.NotePaymentConfirmed, session.ID
		case session.IsExpired():
			to, note, extra = model.StatusCancelled, model.NoteCancelled, "checkout session expired"
		default:
			continue
		}

		updated, previous, err := s.transition(ctx, system, booking.ID, to, note, extra)
		if err != nil {
			errs = append(errs, fmt.Errorf("booking %s: %w", booking.ID, err))

			continue
		}

		log.Info().Str("booking_id", booking.ID).Str("status", to.String()).Msg("reconciled booking payment")

		event := model.NewEvent(model.EventStatusChanged, updated, system.UserID, timezone.Now())
		event.PreviousStatus = previous.String()
		s.afterChange(ctx, event)
	}

	if err = errors.Join(errs...); err != nil {
		log.Error().Err(err).Int("failed", len(errs)).Msg("failed to reconcile some bookings")
	}

	return err //nolint:wrapcheck
}

// release cancels a booking whose checkout never started so its dates free up.
func (s *serviceImpl) release(ctx context.Context, id, reason string) {
	system := gModel.SystemActor()

	updated, previous, err := s.transition(context.WithoutCancel(ctx), system, id, model.StatusCancelled, model.NoteCancelled, reason)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to release booking")

		return
	}

	event := model.NewEvent(model.EventStatusChanged, updated, system.UserID, timezone.Now())
	event.PreviousStatus = previous.String()
	s.afterChange(ctx, event)
}

func pendingPaymentFilter(cutoff time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatusID,
				Value:    int(model.StatusPending),
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckoutSessionID,
				Operator: gDto.FilterIsNotNull,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCreatedAt,
				Value:    cutoff,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
		},
	}
}
