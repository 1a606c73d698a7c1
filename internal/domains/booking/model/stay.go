package model

import (
	"fmt"
	"hotel/shared/timezone"
	"math"
	"strings"
	"time"
)

const (
	NoteCheckedIn        = "Checked in"
	NoteCheckedOut       = "Checked out"
	NoteCancelled        = "Cancelled"
	NotePaymentConfirmed = "Payment confirmed"

	hoursPerDay = 24
)

// Nights counts the nights between two calendar dates. Time of day is ignored.
func Nights(checkIn, checkOut time.Time) int {
	days := timezone.DateOf(checkOut).Sub(timezone.DateOf(checkIn)).Hours() / hoursPerDay

	return int(math.Ceil(days))
}

// ComputeTotal charges rate for every night of the stay, rounded to cents.
func ComputeTotal(rate float64, checkIn, checkOut time.Time) float64 {
	return math.Round(float64(Nights(checkIn, checkOut))*rate*100) / 100
}

// Overlaps compares two stays inclusively: a check-out day shared with another
// stay's check-in day counts as a conflict.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	aIn, aOut = timezone.DateOf(aIn), timezone.DateOf(aOut)
	bIn, bOut = timezone.DateOf(bIn), timezone.DateOf(bOut)

	return !aIn.After(bOut) && !aOut.Before(bIn)
}

// ValidateStay rejects a check-in before today and a check-out not after check-in.
func ValidateStay(checkIn, checkOut, today time.Time) error {
	checkIn, checkOut = timezone.DateOf(checkIn), timezone.DateOf(checkOut)

	if checkIn.Before(timezone.DateOf(today)) {
		return ErrCheckInPast
	}

	if !checkOut.After(checkIn) {
		return ErrInvalidDateRange
	}

	return nil
}

// StampNote appends a timestamped line such as "Checked in at 2025-03-01 14:00:00" to existing.
func StampNote(existing *string, event string, at time.Time, extra string) string {
	line := fmt.Sprintf("%s at %s", event, at.Format(time.DateTime))
	if extra = strings.TrimSpace(extra); extra != "" {
		line += ": " + extra
	}

	if existing == nil || *existing == "" {
		return line
	}

	return *existing + "\n" + line
}
