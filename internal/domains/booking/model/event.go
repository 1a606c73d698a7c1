package model

import "time"

const (
	EventCreated       = "booking.created"
	EventUpdated       = "booking.updated"
	EventStatusChanged = "booking.status_changed"
	EventDeleted       = "booking.deleted"
)

// Event is published on the booking events topic, keyed by booking id.
type Event struct {
	Type           string    `json:"type"`
	BookingID      string    `json:"booking_id"`
	UserID         string    `json:"user_id"`
	RoomID         string    `json:"room_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Actor          string    `json:"actor"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, booking Booking, actor string, at time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		RoomID:     booking.RoomID,
		Status:     booking.StatusID.String(),
		Actor:      actor,
		OccurredAt: at,
	}
}
