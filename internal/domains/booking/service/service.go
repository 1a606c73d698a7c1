package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/stripe"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	argOwnerID = "owner_id"
)

var sortColumns = map[string]string{
	model.FieldCreatedAt:    model.TableName + "." + model.FieldCreatedAt,
	model.FieldBookingDate:  model.TableName + "." + model.FieldBookingDate,
	model.FieldCheckInDate:  model.TableName + "." + model.FieldCheckInDate,
	model.FieldCheckOutDate: model.TableName + "." + model.FieldCheckOutDate,
	model.FieldTotalAmount:  model.TableName + "." + model.FieldTotalAmount,
}

var defaultSort = model.TableName + "." + model.FieldCreatedAt

type Booking interface {
	Create(ctx context.Context, actor gModel.AuthContext, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, actor gModel.AuthContext, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetActive(ctx context.Context, actor gModel.AuthContext, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, actor gModel.AuthContext, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, actor gModel.AuthContext, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, actor gModel.AuthContext, req dto.UpdateStatusRequest, id string) (dto.BookingResponse, error)
	ConfirmPayment(ctx context.Context, actor gModel.AuthContext, req dto.ConfirmPaymentRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, actor gModel.AuthContext, id string) error
	Export(ctx context.Context, actor gModel.AuthContext, req gDto.QueryParams, filter gDto.FilterGroup) ([]byte, error)
	ReconcilePayments(ctx context.Context) error
}

type serviceImpl struct {
	repo       repository.Booking
	roomRepo   roomRepo.Room
	transactor postgres.Transactor
	payment    stripe.Payment
	publisher  kafka.Client
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	transactor postgres.Transactor,
	payment stripe.Payment,
	publisher kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		transactor: transactor,
		payment:    payment,
		publisher:  publisher,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// lockRoom holds the room row until the transaction ends, serialising bookings per room.
func (s *serviceImpl) lockRoom(ctx context.Context, tx *sqlx.Tx, roomID string) (roomModel.Room, error) {
	room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return room, fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, model.ErrRoomNotFound
	}

	if !room.Bookable() {
		return room, model.ErrRoomUnavailable
	}

	return room, nil
}

// transition applies one state machine edge atomically and stamps the note.
func (s *serviceImpl) transition(ctx context.Context, actor gModel.AuthContext, id string, to model.Status, event, extra string) (updated model.Booking, previous model.Status, err error) {
	if uuid.Validate(id) != nil {
		return updated, previous, model.ErrBookingNotFound
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if current.ID == constant.Empty {
			return model.ErrBookingNotFound
		}

		if !canAct(actor, current) {
			return model.ErrForbidden
		}

		if !model.IsTransition(current.StatusID, to) {
			return model.ErrInvalidTransition
		}

		if !model.CanTransition(actor.Role, current.StatusID, to) {
			return model.ErrForbidden
		}

		previous = current.StatusID
		notes := model.StampNote(current.Notes, event, timezone.Now(), extra)

		if err := s.repo.UpdateTx(ctx, tx, statusFields(to, notes, actor.UserID), filter); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		updated, err = s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		return nil
	})

	return updated, previous, err //nolint:wrapcheck
}

// afterChange drops cached reads and publishes the event without holding up the caller.
func (s *serviceImpl) afterChange(ctx context.Context, event model.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, event.BookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		message := kafka.Message{Key: event.BookingID, Type: event.Type, Value: event}
		if err := s.publisher.Publish(c, s.cfg.Kafka.Topics.BookingEvents, message); err != nil {
			log.Error().Err(err).Str("type", event.Type).Str("booking_id", event.BookingID).Msg("failed to publish booking event")
		}
	}()
}

// wrapError passes domain failures through untouched and wraps everything else.
func wrapError(err error, msg string) error {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	log.Error().Err(err).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}

func statusFields(status model.Status, notes, by string) map[string]any {
	return map[string]any{
		model.FieldStatusID:     int(status),
		model.FieldNotes:        notes,
		constant.FieldUpdatedAt: timezone.Now(),
		constant.FieldUpdatedBy: by,
	}
}

func isOperator(actor gModel.AuthContext) bool {
	return actor.Role.IsAdmin() || actor.Role.IsStaff() || actor.Role.IsSystem()
}

// canModify covers edits and deletes: the owning guest or an admin.
func canModify(actor gModel.AuthContext, booking model.Booking) bool {
	return actor.Role.IsAdmin() || actor.Owns(booking.UserID)
}

// canAct covers reads and status changes: operators plus the owner.
func canAct(actor gModel.AuthContext, booking model.Booking) bool {
	return isOperator(actor) || actor.Owns(booking.UserID)
}

// scopeToActor restricts anyone but operators to their own bookings.
func scopeToActor(actor gModel.AuthContext, filter gDto.FilterGroup) gDto.FilterGroup {
	if isOperator(actor) {
		return filter
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			filter,
			gDto.Filter{
				ArgName:  argOwnerID,
				Field:    model.FieldUserID,
				Value:    actor.UserID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}
