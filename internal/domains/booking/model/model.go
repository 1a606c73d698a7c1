package model

import (
	"hotel/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                = "id"
	FieldUserID            = "user_id"
	FieldRoomID            = "room_id"
	FieldCheckInDate       = "check_in_date"
	FieldCheckOutDate      = "check_out_date"
	FieldStatusID          = "status_id"
	FieldTotalAmount       = "total_amount"
	FieldNumberOfGuests    = "number_of_guests"
	FieldSpecialRequests   = "special_requests"
	FieldNotes             = "notes"
	FieldCheckoutSessionID = "checkout_session_id"
	FieldBookingDate       = "booking_date"
	FieldCreatedAt         = "created_at"
)

const (
	UserTable          = "users"
	RoomTable          = "rooms"
	RoomCategoryTable  = "room_categories"
	BookingStatusTable = "booking_statuses"
)

type Booking struct {
	ID                string    `db:"id"`
	UserID            string    `db:"user_id"`
	RoomID            string    `db:"room_id"`
	CheckInDate       time.Time `db:"check_in_date"`
	CheckOutDate      time.Time `db:"check_out_date"`
	StatusID          Status    `db:"status_id"`
	TotalAmount       float64   `db:"total_amount"`
	NumberOfGuests    int       `db:"number_of_guests"`
	SpecialRequests   *string   `db:"special_requests"`
	Notes             *string   `db:"notes"`
	CheckoutSessionID *string   `db:"checkout_session_id"`
	BookingDate       time.Time `db:"booking_date"`
	model.Metadata

	StatusName    string  `column:"name"        db:"status_name"     table:"booking_statuses"`
	UserFirstName string  `column:"first_name"  db:"user_first_name" table:"users"`
	UserLastName  string  `column:"last_name"   db:"user_last_name"  table:"users"`
	UserEmail     string  `column:"email"       db:"user_email"      table:"users"`
	RoomNumber    string  `column:"room_number" db:"room_number"     table:"rooms"`
	RoomPrice     float64 `column:"price"       db:"room_price"      table:"rooms"`
	RoomCategory  string  `column:"name"        db:"room_category"   table:"room_categories"`
}

func (Booking) GetJoinQuery() string {
	return "INNER JOIN users ON users.id = bookings.user_id " +
		"INNER JOIN rooms ON rooms.id = bookings.room_id " +
		"INNER JOIN room_categories ON room_categories.id = rooms.category_id " +
		"INNER JOIN booking_statuses ON booking_statuses.id = bookings.status_id"
}

func (b Booking) GuestName() string {
	switch {
	case b.UserFirstName == "":
		return b.UserLastName
	case b.UserLastName == "":
		return b.UserFirstName
	default:
		return b.UserFirstName + " " + b.UserLastName
	}
}

func (b Booking) SessionID() string {
	if b.CheckoutSessionID == nil {
		return ""
	}

	return *b.CheckoutSessionID
}

// BookingUpdate holds the columns an edit may change. Zero fields are left untouched.
type BookingUpdate struct {
	RoomID          string    `db:"room_id"`
	CheckInDate     time.Time `db:"check_in_date"`
	CheckOutDate    time.Time `db:"check_out_date"`
	TotalAmount     float64   `db:"total_amount"`
	NumberOfGuests  int       `db:"number_of_guests"`
	SpecialRequests string    `db:"special_requests"`
	Notes           string    `db:"notes"`
}
