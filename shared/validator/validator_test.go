package validator_test

import (
	"errors"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stayRequest struct {
	RoomID         string `json:"room_id"          validate:"required,uuid"`
	Email          string `json:"email"            validate:"omitempty,email"`
	Phone          string `json:"phone"            validate:"omitempty,phone"`
	CheckInDate    string `json:"check_in_date"    validate:"required,dateonly"`
	CheckOutDate   string `json:"check_out_date"   validate:"required,dateonly"`
	NumberOfGuests int    `json:"number_of_guests" validate:"gte=1,lte=10"`
	Channel        string `json:"channel"          validate:"omitempty,oneof=web desk"`
}

func validStay() stayRequest {
	return stayRequest{
		RoomID:         "8b0a8e9c-64f5-4b8f-9a36-0fb0f3b0d6a1",
		Email:          "guest@example.com",
		Phone:          "+62 812-3456-7890",
		CheckInDate:    "2025-03-01",
		CheckOutDate:   "2025-03-03",
		NumberOfGuests: 2,
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*stayRequest)
		wantMsg string
	}{
		{
			name:   "valid request",
			mutate: func(*stayRequest) {},
		},
		{
			name:    "missing room reports json name",
			mutate:  func(r *stayRequest) { r.RoomID = "" },
			wantMsg: "room_id is required",
		},
		{
			name:    "room id is not a uuid",
			mutate:  func(r *stayRequest) { r.RoomID = "room-101" },
			wantMsg: "room_id must be a valid UUID",
		},
		{
			name:    "check in is not a date",
			mutate:  func(r *stayRequest) { r.CheckInDate = "03/01/2025" },
			wantMsg: "check_in_date must be a date formatted as YYYY-MM-DD",
		},
		{
			name:    "invalid phone",
			mutate:  func(r *stayRequest) { r.Phone = "call me" },
			wantMsg: "phone must be a valid phone number",
		},
		{
			name:    "too many guests",
			mutate:  func(r *stayRequest) { r.NumberOfGuests = 11 },
			wantMsg: "number_of_guests must be less than or equal to 10",
		},
		{
			name:    "unknown channel",
			mutate:  func(r *stayRequest) { r.Channel = "fax" },
			wantMsg: "channel must be one of web desk",
		},
		{
			name:    "invalid email",
			mutate:  func(r *stayRequest) { r.Email = "guest" },
			wantMsg: "email must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStay()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "date only", field: "2025-02-28", tag: "dateonly"},
		{name: "impossible date", field: "2025-02-30", tag: "dateonly", wantErr: true},
		{name: "empty date is left to required", field: "", tag: "dateonly"},
		{name: "required empty", field: "", tag: "required", wantErr: true},
		{name: "oneof status", field: 2, tag: "oneof=1 2 3 4"},
		{name: "oneof status out of range", field: 7, tag: "oneof=1 2 3 4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		jsonBody string
		wantErr  bool
	}{
		{
			name:     "valid body",
			jsonBody: `{"room_id":"8b0a8e9c-64f5-4b8f-9a36-0fb0f3b0d6a1","check_in_date":"2025-03-01","check_out_date":"2025-03-03","number_of_guests":1}`,
		},
		{
			name:     "malformed body",
			jsonBody: `{"room_id":}`,
			wantErr:  true,
		},
		{
			name:     "empty body",
			jsonBody: `{}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data stayRequest

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			assert.Equal(t, tt.wantErr, err != nil)

			var f *failure.Failure
			if err != nil {
				assert.True(t, errors.As(err, &f))
			}
		})
	}
}
