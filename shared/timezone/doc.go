// Package timezone keeps the hotel's wall clock and its calendar dates apart.
//
// Timestamps (created_at, booking_date) are rendered in the zone named by APP_TIMEZONE,
// loaded once when the package is imported:
//
//	now := timezone.Now()
//	formatted := timezone.Format(booking.CreatedAt, "2006-01-02 15:04:05")
//
// Stay dates are calendar dates carried as UTC midnights, the shape postgres DATE
// columns scan into:
//
//	checkIn, checkOut, err := timezone.ParseStay("2025-03-01", "2025-03-03")
//	if checkIn.Before(timezone.Today()) { ... }
//
// Use IANA names such as "UTC", "Asia/Jakarta" or "Europe/London"; anything else falls back to UTC.
package timezone
