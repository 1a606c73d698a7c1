package service

import (
	"context"
	"fmt"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bookings"

var exportHeaders = []any{
	"Booking ID", "Guest", "Email", "Room", "Category", "Check In", "Check Out",
	"Nights", "Guests", "Status", "Total Amount", "Booking Date",
}

// Export renders every booking matching the filter as an xlsx workbook. Pagination is ignored.
func (s *serviceImpl) Export(ctx context.Context, actor gModel.AuthContext, req gDto.QueryParams, filter gDto.FilterGroup) (res []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !actor.Role.IsAdmin() && !actor.Role.IsStaff() {
		return res, model.ErrForbidden // nolint:wrapcheck
	}

	req.Page = 0
	req.Limit = 0
	req.ApplySort(sortColumns, defaultSort)

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for export")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	scope.SetAttribute("export.rows", len(bookings))

	return renderWorkbook(bookings)
}

func renderWorkbook(bookings []model.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, booking := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cell: %w", err)
		}

		row := []any{
			booking.ID,
			booking.GuestName(),
			booking.UserEmail,
			booking.RoomNumber,
			booking.RoomCategory,
			booking.CheckInDate.Format(constant.DateOnlyFormat),
			booking.CheckOutDate.Format(constant.DateOnlyFormat),
			model.Nights(booking.CheckInDate, booking.CheckOutDate),
			booking.NumberOfGuests,
			booking.StatusID.String(),
			booking.TotalAmount,
			booking.BookingDate.Format(constant.DateFormat),
		}

		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
