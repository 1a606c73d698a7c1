package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

// Matches the numeric id of the Cancelled booking status.
const bookingStatusCancelled = 3

const vacancyQuery = "NOT EXISTS (SELECT 1 FROM bookings WHERE bookings.room_id = rooms.id " +
	"AND bookings.status_id != :vacancy_cancelled " +
	"AND bookings.check_in_date <= :vacancy_check_out " +
	"AND bookings.check_out_date >= :vacancy_check_in)"

type Room interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// AvailabilityFilter matches rooms outside maintenance with no occupying booking touching
// [checkIn, checkOut], optionally narrowed to one category.
func AvailabilityFilter(checkIn, checkOut time.Time, category string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			ArgName:  "maintenance_status",
			Field:    model.FieldStatusID,
			Value:    int(model.StatusMaintenance),
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			Value:    vacancyQuery,
			Operator: gDto.FilterPlainQuery,
			Args: map[string]any{
				"vacancy_cancelled": bookingStatusCancelled,
				"vacancy_check_in":  checkIn.Format(constant.DateOnlyFormat),
				"vacancy_check_out": checkOut.Format(constant.DateOnlyFormat),
			},
		},
	}

	if category != "" {
		filters = append(filters, gDto.Filter{
			ArgName:  "category_name",
			Field:    model.FieldName,
			Value:    category,
			Operator: gDto.FilterOperatorEq,
			Table:    model.CategoryTable,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}
