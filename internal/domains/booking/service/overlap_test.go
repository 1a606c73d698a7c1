package service_test

import (
	"context"
	"fmt"
	"hotel/infras/stripe"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// occupancy answers room locks, availability checks and inserts from the in-memory table,
// so every call in a sequence sees the bookings made before it.
func (h *harness) occupancy(rooms ...roomModel.Room) {
	byID := make(map[string]roomModel.Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}

	h.seed()

	h.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, _ ...string) (roomModel.Room, error) {
			return byID[idOf(filter)], nil
		}).AnyTimes()

	h.repo.EXPECT().IsAvailable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
			h.mu.Lock()
			defer h.mu.Unlock()

			for _, other := range h.store {
				if other.ID == excludeID || other.RoomID != roomID || !other.StatusID.Occupies() {
					continue
				}

				if model.Overlaps(checkIn, checkOut, other.CheckInDate, other.CheckOutDate) {
					return false, nil
				}
			}

			return true, nil
		}).AnyTimes()

	h.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, created model.Booking) error {
			h.put(created)

			return nil
		}).AnyTimes()

	h.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
			h.apply(idOf(filter), fields)

			return nil
		}).AnyTimes()

	h.payment.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r stripe.CheckoutRequest) (stripe.CheckoutSession, error) {
			return stripe.CheckoutSession{ID: "cs_" + r.BookingID, URL: "https://checkout.stripe.com/c/" + r.BookingID, BookingID: r.BookingID}, nil
		}).AnyTimes()
}

// assertNoOverlap fails when two occupying bookings of one room share a day.
func (h *harness) assertNoOverlap(t *testing.T) {
	t.Helper()

	h.mu.Lock()
	defer h.mu.Unlock()

	bookings := make([]model.Booking, 0, len(h.store))
	for _, b := range h.store {
		if b.StatusID.Occupies() {
			bookings = append(bookings, b)
		}
	}

	for i, a := range bookings {
		for _, b := range bookings[i+1:] {
			if a.RoomID != b.RoomID {
				continue
			}

			assert.False(t, model.Overlaps(a.CheckInDate, a.CheckOutDate, b.CheckInDate, b.CheckOutDate),
				"bookings %s and %s overlap in room %s", a.ID, b.ID, a.RoomID)
		}
	}
}

func stayRequest(roomID string, checkIn time.Time, nights int) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID:         roomID,
		CheckInDate:    checkIn.Format(constant.DateOnlyFormat),
		CheckOutDate:   checkIn.AddDate(0, 0, nights).Format(constant.DateOnlyFormat),
		NumberOfGuests: 1,
	}
}

func TestBookingService_CancelFreesTheDates(t *testing.T) {
	h := newHarness(t)
	h.occupancy(room(roomModel.StatusAvailable))

	checkIn, _ := stay()
	req := stayRequest(roomID, checkIn, 2)

	first, err := h.svc.Create(context.Background(), guest, req)
	require.NoError(t, err)
	assert.Equal(t, "Pending", first.Booking.Status)
	assert.InDelta(t, 200.0, first.Booking.TotalAmount, 0.001)
	h.assertNoOverlap(t)

	_, err = h.svc.Create(context.Background(), other, req)
	require.ErrorIs(t, err, model.ErrRoomUnavailable)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	h.assertNoOverlap(t)

	_, err = h.svc.UpdateStatus(context.Background(), guest, dto.UpdateStatusRequest{StatusID: int(model.StatusCancelled)}, first.Booking.ID)
	require.NoError(t, err)

	second, err := h.svc.Create(context.Background(), other, req)
	require.NoError(t, err)
	assert.Equal(t, "Pending", second.Booking.Status)
	assert.NotEqual(t, first.Booking.ID, second.Booking.ID)
	h.assertNoOverlap(t)
}

func TestBookingService_TouchingStaysConflict(t *testing.T) {
	checkIn, checkOut := stay()

	tests := []struct {
		name    string
		checkIn time.Time
		nights  int
		wantErr error
	}{
		{name: "starts on the check-out day", checkIn: checkOut, nights: 2, wantErr: model.ErrRoomUnavailable},
		{name: "ends on the check-in day", checkIn: checkIn.AddDate(0, 0, -2), nights: 2, wantErr: model.ErrRoomUnavailable},
		{name: "inside the stay", checkIn: checkIn.AddDate(0, 0, 1), nights: 1, wantErr: model.ErrRoomUnavailable},
		{name: "day after check-out", checkIn: checkOut.AddDate(0, 0, 1), nights: 2},
		{name: "two days before check-in", checkIn: checkIn.AddDate(0, 0, -3), nights: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.occupancy(room(roomModel.StatusAvailable))
			h.put(booking(bookingID, guest.UserID, model.StatusConfirmed))

			_, err := h.svc.Create(context.Background(), other, stayRequest(roomID, tt.checkIn, tt.nights))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			h.assertNoOverlap(t)
		})
	}
}

func TestBookingService_RandomSequenceKeepsRoomsFree(t *testing.T) {
	rooms := []roomModel.Room{
		{ID: roomID, RoomNumber: "R101", Price: 100, StatusID: roomModel.StatusAvailable},
		{ID: otherRoomID, RoomNumber: "R102", Price: 150, StatusID: roomModel.StatusAvailable},
	}

	h := newHarness(t)
	h.occupancy(rooms...)

	rng := rand.New(rand.NewSource(42)) // nolint:gosec
	today := timezone.Today()
	ctx := context.Background()

	var ids []string

	for step := range 200 {
		var err error

		checkIn := today.AddDate(0, 0, 1+rng.Intn(20))
		nights := 1 + rng.Intn(4)
		target := rooms[rng.Intn(len(rooms))].ID

		switch op := rng.Intn(4); {
		case op < 2 || len(ids) == 0:
			actor := gModel.NewAuthContext(fmt.Sprintf("guest-%d", rng.Intn(5)), constant.RoleGuest)

			var res dto.CreateBookingResponse

			res, err = h.svc.Create(ctx, actor, stayRequest(target, checkIn, nights))
			if err == nil {
				ids = append(ids, res.Booking.ID)
			}
		case op == 2:
			req := dto.UpdateBookingRequest{
				RoomID:       target,
				CheckInDate:  checkIn.Format(constant.DateOnlyFormat),
				CheckOutDate: checkIn.AddDate(0, 0, nights).Format(constant.DateOnlyFormat),
			}

			_, err = h.svc.Update(ctx, admin, req, ids[rng.Intn(len(ids))])
		default:
			_, err = h.svc.UpdateStatus(ctx, admin, dto.UpdateStatusRequest{StatusID: int(model.StatusCancelled)}, ids[rng.Intn(len(ids))])
		}

		if err != nil {
			require.Less(t, failure.GetCode(err), http.StatusInternalServerError, "step %d: %v", step, err)
		}

		h.assertNoOverlap(t)
	}

	require.NotEmpty(t, ids)
}
