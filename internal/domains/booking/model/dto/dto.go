package dto

import (
	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID          string `json:"room_id"          validate:"required,uuid"`
	CheckInDate     string `json:"check_in_date"    validate:"required,dateonly"`
	CheckOutDate    string `json:"check_out_date"   validate:"required,dateonly"`
	NumberOfGuests  int    `json:"number_of_guests" validate:"required,min=1,max=20"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
}

// Stay parses the requested check-in and check-out dates.
func (c *CreateBookingRequest) Stay() (time.Time, time.Time, error) {
	return timezone.ParseStay(c.CheckInDate, c.CheckOutDate)
}

func (c *CreateBookingRequest) ToModel(actor gModel.AuthContext, checkIn, checkOut time.Time, total float64) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:              uuid.NewString(),
		UserID:          actor.UserID,
		RoomID:          c.RoomID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		StatusID:        model.StatusPending,
		TotalAmount:     total,
		NumberOfGuests:  c.NumberOfGuests,
		SpecialRequests: optional(c.SpecialRequests),
		BookingDate:     now,
		Metadata:        gModel.NewMetadata(actor.UserID, now),
	}
}

type UpdateBookingRequest struct {
	RoomID          string `json:"room_id"          validate:"omitempty,uuid"`
	CheckInDate     string `json:"check_in_date"    validate:"omitempty,dateonly"`
	CheckOutDate    string `json:"check_out_date"   validate:"omitempty,dateonly"`
	NumberOfGuests  int    `json:"number_of_guests" validate:"omitempty,min=1,max=20"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
	Notes           string `json:"notes"            validate:"omitempty,max=2000"`
}

// ChangesStay reports whether the edit touches the room or the dates.
func (u *UpdateBookingRequest) ChangesStay() bool {
	return u.RoomID != "" || u.CheckInDate != "" || u.CheckOutDate != ""
}

// Stay merges the requested dates over the current ones.
func (u *UpdateBookingRequest) Stay(current model.Booking) (time.Time, time.Time, error) {
	checkIn := current.CheckInDate.Format(constant.DateOnlyFormat)
	if u.CheckInDate != "" {
		checkIn = u.CheckInDate
	}

	checkOut := current.CheckOutDate.Format(constant.DateOnlyFormat)
	if u.CheckOutDate != "" {
		checkOut = u.CheckOutDate
	}

	return timezone.ParseStay(checkIn, checkOut)
}

type UpdateStatusRequest struct {
	StatusID int    `json:"status_id" validate:"required,oneof=1 2 3 4"`
	Notes    string `json:"notes"     validate:"omitempty,max=2000"`
}

func (u *UpdateStatusRequest) Status() model.Status {
	return model.Status(u.StatusID)
}

type ConfirmPaymentRequest struct {
	SessionID string `json:"session_id" validate:"required,max=255"`
}

type BookingUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingRoomResponse struct {
	ID       string  `json:"id"`
	Number   string  `json:"number"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

type BookingResponse struct {
	ID                string              `json:"id"`
	User              BookingUserResponse `json:"user"`
	Room              BookingRoomResponse `json:"room"`
	CheckInDate       string              `json:"check_in_date"`
	CheckOutDate      string              `json:"check_out_date"`
	Nights            int                 `json:"nights"`
	StatusID          int                 `json:"status_id"`
	Status            string              `json:"status"`
	TotalAmount       float64             `json:"total_amount"`
	NumberOfGuests    int                 `json:"number_of_guests"`
	SpecialRequests   *string             `json:"special_requests"`
	Notes             *string             `json:"notes,omitempty"`
	CheckoutSessionID *string             `json:"checkout_session_id,omitempty"`
	BookingDate       string              `json:"booking_date"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.User = BookingUserResponse{
		ID:    model.UserID,
		Name:  model.GuestName(),
		Email: model.UserEmail,
	}
	r.Room = BookingRoomResponse{
		ID:       model.RoomID,
		Number:   model.RoomNumber,
		Price:    model.RoomPrice,
		Category: model.RoomCategory,
	}
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Nights = bookingNights(model)
	r.StatusID = int(model.StatusID)
	r.Status = model.StatusName
	if r.Status == "" {
		r.Status = model.StatusID.String()
	}
	r.TotalAmount = model.TotalAmount
	r.NumberOfGuests = model.NumberOfGuests
	r.SpecialRequests = model.SpecialRequests
	r.Notes = model.Notes
	r.CheckoutSessionID = model.CheckoutSessionID
	r.BookingDate = timezone.Format(model.BookingDate, constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

// HideInternal drops staff-only fields before a booking is shown to a guest.
func (r *BookingResponse) HideInternal() {
	r.Notes = nil
}

type CreateBookingResponse struct {
	Booking           BookingResponse `json:"booking"`
	CheckoutSessionID string          `json:"checkout_session_id"`
	CheckoutURL       string          `json:"checkout_url"`
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

func (r *GetBookingsResponse) HideInternal() {
	for i := range r.Bookings {
		r.Bookings[i].HideInternal()
	}
}

// Folio is the stay summary archived when a booking is completed.
type Folio struct {
	BookingID    string    `json:"booking_id"`
	GuestName    string    `json:"guest_name"`
	GuestEmail   string    `json:"guest_email"`
	RoomNumber   string    `json:"room_number"`
	RoomCategory string    `json:"room_category"`
	CheckInDate  string    `json:"check_in_date"`
	CheckOutDate string    `json:"check_out_date"`
	Nights       int       `json:"nights"`
	NightlyRate  float64   `json:"nightly_rate"`
	TotalAmount  float64   `json:"total_amount"`
	Notes        string    `json:"notes,omitempty"`
	ArchivedAt   time.Time `json:"archived_at"`
}

func (f *Folio) FromModel(model model.Booking, at time.Time) {
	f.BookingID = model.ID
	f.GuestName = model.GuestName()
	f.GuestEmail = model.UserEmail
	f.RoomNumber = model.RoomNumber
	f.RoomCategory = model.RoomCategory
	f.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	f.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	f.Nights = bookingNights(model)
	f.NightlyRate = model.RoomPrice
	f.TotalAmount = model.TotalAmount
	f.ArchivedAt = at

	if model.Notes != nil {
		f.Notes = *model.Notes
	}
}

func bookingNights(booking model.Booking) int {
	if booking.CheckInDate.IsZero() || booking.CheckOutDate.IsZero() {
		return 0
	}

	return model.Nights(booking.CheckInDate, booking.CheckOutDate)
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	return &value
}
