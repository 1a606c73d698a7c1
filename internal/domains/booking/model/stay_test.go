package model_test

import (
	"hotel/internal/domains/booking/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"two nights", date("2025-03-01"), date("2025-03-03"), 2},
		{"across month end", date("2025-02-27"), date("2025-03-02"), 3},
		{"time of day ignored", date("2025-03-01").Add(15 * time.Hour), date("2025-03-02").Add(9 * time.Hour), 1},
		{"leap day", date("2024-02-28"), date("2024-03-01"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestComputeTotal(t *testing.T) {
	assert.InDelta(t, 200.00, model.ComputeTotal(100, date("2025-03-01"), date("2025-03-03")), 0.0001)
	assert.InDelta(t, 299.97, model.ComputeTotal(99.99, date("2025-03-01"), date("2025-03-04")), 0.0001)
	assert.InDelta(t, 0.30, model.ComputeTotal(0.1, date("2025-03-01"), date("2025-03-04")), 0.0001)

	for nights := 1; nights <= 30; nights++ {
		in := date("2025-01-01")
		out := in.AddDate(0, 0, nights)

		assert.Equal(t, nights, model.Nights(in, out))
		assert.InDelta(t, float64(nights)*120.5, model.ComputeTotal(120.5, in, out), 0.0001)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    [2]string
		b    [2]string
		want bool
	}{
		{"same range", [2]string{"2025-03-01", "2025-03-03"}, [2]string{"2025-03-01", "2025-03-03"}, true},
		{"shares a night", [2]string{"2025-03-01", "2025-03-03"}, [2]string{"2025-03-02", "2025-03-04"}, true},
		{"shared boundary day conflicts", [2]string{"2025-03-01", "2025-03-03"}, [2]string{"2025-03-03", "2025-03-05"}, true},
		{"contained", [2]string{"2025-03-01", "2025-03-10"}, [2]string{"2025-03-04", "2025-03-05"}, true},
		{"disjoint", [2]string{"2025-03-01", "2025-03-03"}, [2]string{"2025-03-04", "2025-03-06"}, false},
		{"disjoint before", [2]string{"2025-03-05", "2025-03-07"}, [2]string{"2025-03-01", "2025-03-04"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aIn, aOut := date(tt.a[0]), date(tt.a[1])
			bIn, bOut := date(tt.b[0]), date(tt.b[1])

			assert.Equal(t, tt.want, model.Overlaps(aIn, aOut, bIn, bOut))
			assert.Equal(t, tt.want, model.Overlaps(bIn, bOut, aIn, aOut))
		})
	}
}

func TestValidateStay(t *testing.T) {
	today := date("2025-03-01").Add(18 * time.Hour)

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  error
	}{
		{"today is fine", "2025-03-01", "2025-03-02", nil},
		{"yesterday", "2025-02-28", "2025-03-02", model.ErrCheckInPast},
		{"check out before check in", "2025-03-05", "2025-03-04", model.ErrInvalidDateRange},
		{"same day", "2025-03-05", "2025-03-05", model.ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.ValidateStay(date(tt.checkIn), date(tt.checkOut), today)
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStampNote(t *testing.T) {
	at := time.Date(2025, 3, 1, 14, 0, 5, 0, time.UTC)

	assert.Equal(t, "Checked in at 2025-03-01 14:00:05", model.StampNote(nil, model.NoteCheckedIn, at, ""))

	existing := "late arrival"
	assert.Equal(t,
		"late arrival\nChecked out at 2025-03-01 14:00:05: key returned",
		model.StampNote(&existing, model.NoteCheckedOut, at, " key returned "),
	)
}

func TestBooking_GuestName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", model.Booking{UserFirstName: "Ada", UserLastName: "Lovelace"}.GuestName())
	assert.Equal(t, "Ada", model.Booking{UserFirstName: "Ada"}.GuestName())
	assert.Equal(t, "Lovelace", model.Booking{UserLastName: "Lovelace"}.GuestName())
}
