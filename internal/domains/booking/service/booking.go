package service

import (
	"context"
	"fmt"
	"hotel/infras/stripe"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

func (s *serviceImpl) Create(ctx context.Context, actor gModel.AuthContext, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !actor.IsAuthenticated() {
		return res, model.ErrUnauthenticated // nolint:wrapcheck
	}

	// Bookings belong to a user; the system actor has no row in users.
	if actor.Role.IsSystem() {
		return res, model.ErrForbidden // nolint:wrapcheck
	}

	checkIn, checkOut, err := req.Stay()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = model.ValidateStay(checkIn, checkOut, timezone.Today()); err != nil {
		return res, err // nolint:wrapcheck
	}

	var booking model.Booking

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		room, err := s.lockRoom(ctx, tx, req.RoomID)
		if err != nil {
			return err
		}

		available, err := s.repo.IsAvailable(ctx, tx, room.ID, checkIn, checkOut, constant.Empty)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if !available {
			return model.ErrRoomUnavailable
		}

		booking = req.ToModel(actor, checkIn, checkOut, model.ComputeTotal(room.Price, checkIn, checkOut))

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return err //nolint:wrapcheck
		}

		booking, err = s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(booking.ID, model.FieldID, model.TableName))

		return err //nolint:wrapcheck
	})
	if err != nil {
		return res, wrapError(err, "failed to create booking")
	}

	scope.SetAttribute("booking.id", booking.ID)

	session, err := s.payment.CreateCheckoutSession(ctx, stripe.CheckoutRequest{
		BookingID:     booking.ID,
		Description:   fmt.Sprintf("Room %s, %d night(s) from %s", booking.RoomNumber, model.Nights(checkIn, checkOut), req.CheckInDate),
		Amount:        booking.TotalAmount,
		CustomerEmail: booking.UserEmail,
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to create checkout session")
		s.release(ctx, booking.ID, "payment could not be initiated")

		return res, model.ErrPaymentInitiationFailed // nolint:wrapcheck
	}

	sessionFields := map[string]any{
		model.FieldCheckoutSessionID: session.ID,
		constant.FieldUpdatedAt:      timezone.Now(),
		constant.FieldUpdatedBy:      actor.UserID,
	}

	if err = s.repo.Update(ctx, sessionFields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to store checkout session")
		s.release(ctx, booking.ID, "checkout session could not be stored")

		return res, fmt.Errorf("failed to store checkout session: %w", err)
	}

	booking.CheckoutSessionID = &session.ID

	s.afterChange(ctx, model.NewEvent(model.EventCreated, booking, actor.UserID, timezone.Now()))

	res.Booking.FromModel(booking)
	res.CheckoutSessionID = session.ID
	res.CheckoutURL = session.URL

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, actor gModel.AuthContext, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !actor.IsAuthenticated() {
		return res, model.ErrUnauthenticated // nolint:wrapcheck
	}

	req.ApplySort(sortColumns, defaultSort)
	filter = scopeToActor(actor, filter)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	// Guest keys carry the owner filter, so hiding before caching is safe.
	if !isOperator(actor) {
		res.HideInternal()
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// GetActive lists bookings still in play for the front desk: neither cancelled nor completed.
func (s *serviceImpl) GetActive(ctx context.Context, actor gModel.AuthContext, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !actor.Role.IsAdmin() && !actor.Role.IsStaff() {
		return res, model.ErrForbidden // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatusID,
				Value:    []int{int(model.StatusCancelled), int(model.StatusCompleted)},
				Operator: gDto.FilterOperatorNotIn,
				Table:    model.TableName,
			},
		},
	}

	return s.GetAll(ctx, actor, req, filter)
}

func (s *serviceImpl) Get(ctx context.Context, actor gModel.AuthContext, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !actor.IsAuthenticated() {
		return res, model.ErrUnauthenticated // nolint:wrapcheck
	}

	if uuid.Validate(id) != nil {
		return res, model.ErrBookingNotFound // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return visible(actor, res)
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, model.ErrBookingNotFound // nolint:wrapcheck
	}

	res.FromModel(booking)

	cached := res

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return visible(actor, res)
}

// visible enforces read access on a booking and strips internal notes for its owner.
func visible(actor gModel.AuthContext, res dto.BookingResponse) (dto.BookingResponse, error) {
	if isOperator(actor) {
		return res, nil
	}

	if !actor.Owns(res.User.ID) {
		return dto.BookingResponse{}, model.ErrForbidden
	}

	res.HideInternal()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, actor gModel.AuthContext, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateBookingRequest{}) {
		return res, model.ErrEmptyUpdate // nolint:wrapcheck
	}

	if req.Notes != constant.Empty && !actor.Role.IsAdmin() {
		return res, model.ErrNotesForbidden // nolint:wrapcheck
	}

	if uuid.Validate(id) != nil {
		return res, model.ErrBookingNotFound // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var updated model.Booking

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if current.ID == constant.Empty {
			return model.ErrBookingNotFound
		}

		if !canModify(actor, current) {
			return model.ErrForbidden
		}

		if current.StatusID.IsTerminal() {
			return model.ErrBookingClosed
		}

		changes := model.BookingUpdate{
			NumberOfGuests:  req.NumberOfGuests,
			SpecialRequests: req.SpecialRequests,
			Notes:           req.Notes,
		}

		if req.ChangesStay() {
			if err := s.restay(ctx, tx, req, current, &changes); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateTx(ctx, tx, shared.TransformFields(changes, actor.UserID), filter); err != nil {
			return err //nolint:wrapcheck
		}

		updated, err = s.repo.GetForUpdateTx(ctx, tx, filter)

		return err //nolint:wrapcheck
	})
	if err != nil {
		return res, wrapError(err, "failed to update booking")
	}

	s.afterChange(ctx, model.NewEvent(model.EventUpdated, updated, actor.UserID, timezone.Now()))

	res.FromModel(updated)

	return visible(actor, res)
}

// restay validates a changed room or date range, re-checks availability without the
// booking itself and reprices it from the room's current rate.
func (s *serviceImpl) restay(ctx context.Context, tx *sqlx.Tx, req dto.UpdateBookingRequest, current model.Booking, changes *model.BookingUpdate) error {
	checkIn, checkOut, err := req.Stay(current)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	// An unchanged check-in may already lie in the past for a stay in progress.
	reference := timezone.Today()
	if req.CheckInDate == constant.Empty {
		reference = checkIn
	}

	if err := model.ValidateStay(checkIn, checkOut, reference); err != nil {
		return err //nolint:wrapcheck
	}

	roomID := current.RoomID
	if req.RoomID != constant.Empty {
		roomID = req.RoomID
	}

	room, err := s.lockRoom(ctx, tx, roomID)
	if err != nil {
		return err
	}

	available, err := s.repo.IsAvailable(ctx, tx, room.ID, checkIn, checkOut, current.ID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !available {
		return model.ErrRoomUnavailable
	}

	changes.RoomID = req.RoomID
	changes.CheckInDate = checkIn
	changes.CheckOutDate = checkOut
	changes.TotalAmount = model.ComputeTotal(room.Price, checkIn, checkOut)

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, actor gModel.AuthContext, req dto.UpdateStatusRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !actor.IsAuthenticated() {
		return res, model.ErrUnauthenticated // nolint:wrapcheck
	}

	to := req.Status()

	updated, previous, err := s.transition(ctx, actor, id, to, model.TransitionNote(to), req.Notes)
	if err != nil {
		return res, wrapError(err, "failed to update booking status")
	}

	event := model.NewEvent(model.EventStatusChanged, updated, actor.UserID, timezone.Now())
	event.PreviousStatus = previous.String()
	s.afterChange(ctx, event)

	res.FromModel(updated)

	return visible(actor, res)
}

func (s *serviceImpl) Delete(ctx context.Context, actor gModel.AuthContext, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return model.ErrBookingNotFound // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return model.ErrBookingNotFound // nolint:wrapcheck
	}

	if !canModify(actor, booking) {
		return model.ErrForbidden // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.afterChange(ctx, model.NewEvent(model.EventDeleted, booking, actor.UserID, timezone.Now()))

	return nil
}
