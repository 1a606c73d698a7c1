package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	argStayCheckIn     = "stay_check_in"
	argStayCheckOut    = "stay_check_out"
	argCancelledStatus = "cancelled_status"
	argExcludeID       = "exclude_id"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	IsAvailable(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertTx reports a bookings_no_overlap violation as ErrRoomUnavailable.
func (r *repositoryImpl) InsertTx(ctx context.Context, sqltx *sqlx.Tx, booking model.Booking) error {
	err := r.Repository.InsertTx(ctx, sqltx, booking)
	if postgres.IsExclusionViolation(err) {
		return model.ErrRoomUnavailable
	}

	return err //nolint:wrapcheck
}

func (r *repositoryImpl) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error {
	err := r.Repository.UpdateTx(ctx, sqltx, req, filter)
	if postgres.IsExclusionViolation(err) {
		return model.ErrRoomUnavailable
	}

	return err //nolint:wrapcheck
}

// IsAvailable reports whether no occupying booking other than excludeID overlaps the stay.
func (r *repositoryImpl) IsAvailable(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.IsAvailable")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		model.FieldRoomID:       roomID,
		model.FieldCheckInDate:  checkIn.Format(constant.DateOnlyFormat),
		model.FieldCheckOutDate: checkOut.Format(constant.DateOnlyFormat),
	})

	exist, err := r.ExistTx(ctx, sqltx, OverlapFilter(roomID, checkIn, checkOut, excludeID))
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check room availability: %w", err)
	}

	return !exist, nil
}

// OverlapFilter matches the occupying bookings of a room whose dates touch [checkIn, checkOut].
func OverlapFilter(roomID string, checkIn, checkOut time.Time, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldRoomID,
			Value:    roomID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  argCancelledStatus,
			Field:    model.FieldStatusID,
			Value:    int(model.StatusCancelled),
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  argStayCheckOut,
			Field:    model.FieldCheckInDate,
			Value:    checkOut.Format(constant.DateOnlyFormat),
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  argStayCheckIn,
			Field:    model.FieldCheckOutDate,
			Value:    checkIn.Format(constant.DateOnlyFormat),
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		},
	}

	if excludeID != "" {
		filters = append(filters, gDto.Filter{
			ArgName:  argExcludeID,
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}
