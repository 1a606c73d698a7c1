package postgres

import (
	"errors"
	"hotel/shared/constant"

	"github.com/lib/pq"
)

// HasCode reports whether err carries the given SQLSTATE.
func HasCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}

	return false
}

// IsExclusionViolation matches the bookings_no_overlap constraint firing.
func IsExclusionViolation(err error) bool {
	return HasCode(err, constant.PqErrorCodeExclusionViolation)
}

func IsUniqueViolation(err error) bool {
	return HasCode(err, constant.PqErrorCodeUniqueViolation)
}
