package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"
	"net/http"
	"time"
)

type AvailabilityRequest struct {
	CheckIn  string `json:"check_in"  validate:"required,dateonly"`
	CheckOut string `json:"check_out" validate:"required,dateonly"`
	Category string `json:"category"  validate:"omitempty,oneof=Standard Deluxe Suite"`
}

func (a *AvailabilityRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	a.CheckIn = query.Get(constant.RequestParamCheckIn)
	a.CheckOut = query.Get(constant.RequestParamCheckOut)
	a.Category = query.Get(constant.RequestParamCategory)
}

func (a *AvailabilityRequest) Stay() (time.Time, time.Time, error) {
	return timezone.ParseStay(a.CheckIn, a.CheckOut) //nolint:wrapcheck
}

type RoomResponse struct {
	ID               string  `json:"id"`
	RoomNumber       string  `json:"room_number"`
	Category         string  `json:"category"`
	Price            float64 `json:"price"`
	StatusID         int     `json:"status_id"`
	Status           string  `json:"status"`
	MaintenanceNotes *string `json:"maintenance_notes"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Category = model.CategoryName
	r.Price = model.Price
	r.StatusID = int(model.StatusID)
	r.Status = model.StatusName
	if r.Status == "" {
		r.Status = model.StatusID.String()
	}
	r.MaintenanceNotes = model.MaintenanceNotes
	r.Metadata.FromModel(model.Metadata)
}

type AvailableRoom struct {
	RoomResponse
	Nights      int     `json:"nights"`
	TotalAmount float64 `json:"total_amount"`
}

type AvailabilityResponse struct {
	CheckIn   string          `json:"check_in"`
	CheckOut  string          `json:"check_out"`
	Rooms     []AvailableRoom `json:"rooms"`
	TotalData int             `json:"total_data"`
}
