package model

import "hotel/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID               = "id"
	FieldRoomNumber       = "room_number"
	FieldCategoryID       = "category_id"
	FieldPrice            = "price"
	FieldStatusID         = "status_id"
	FieldMaintenanceNotes = "maintenance_notes"

	CategoryTable = "room_categories"
	StatusTable   = "room_statuses"
	FieldName     = "name"
)

const (
	CategoryStandard = "Standard"
	CategoryDeluxe   = "Deluxe"
	CategorySuite    = "Suite"
)

// Status mirrors the room_statuses lookup table.
type Status int

const (
	StatusAvailable Status = iota + 1
	StatusOccupied
	StatusMaintenance
)

func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusOccupied:
		return "Occupied"
	case StatusMaintenance:
		return "Maintenance"
	default:
		return "Unknown"
	}
}

type Room struct {
	ID               string  `db:"id"`
	RoomNumber       string  `db:"room_number"`
	CategoryID       int     `db:"category_id"`
	Price            float64 `db:"price"`
	StatusID         Status  `db:"status_id"`
	MaintenanceNotes *string `db:"maintenance_notes"`
	model.Metadata

	CategoryName string `column:"name" db:"category_name" table:"room_categories"`
	StatusName   string `column:"name" db:"status_name"   table:"room_statuses"`
}

func (Room) GetJoinQuery() string {
	return "INNER JOIN room_categories ON room_categories.id = rooms.category_id " +
		"INNER JOIN room_statuses ON room_statuses.id = rooms.status_id"
}

// Bookable reports whether the room may take new stays. Occupied rooms still accept
// future bookings; only maintenance takes a room out of inventory.
func (r Room) Bookable() bool {
	return r.ID != "" && r.StatusID != StatusMaintenance
}
