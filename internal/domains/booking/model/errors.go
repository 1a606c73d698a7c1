package model

import (
	"hotel/shared/failure"
	"net/http"
)

var (
	ErrBookingNotFound         = failure.New(http.StatusNotFound, "booking not found")
	ErrRoomNotFound            = failure.New(http.StatusNotFound, "room not found")
	ErrRoomUnavailable         = failure.New(http.StatusConflict, "room is not available for the selected dates")
	ErrUnauthenticated         = failure.New(http.StatusUnauthorized, "authentication required")
	ErrForbidden               = failure.New(http.StatusForbidden, "you are not allowed to act on this booking")
	ErrNotesForbidden          = failure.New(http.StatusForbidden, "only admins can edit internal notes")
	ErrInvalidTransition       = failure.New(http.StatusBadRequest, "status transition is not allowed")
	ErrBookingClosed           = failure.New(http.StatusConflict, "booking is already completed or cancelled")
	ErrCheckInPast             = failure.New(http.StatusBadRequest, "check_in_date cannot be in the past")
	ErrInvalidDateRange        = failure.New(http.StatusBadRequest, "check_out_date must be after check_in_date")
	ErrEmptyUpdate             = failure.New(http.StatusBadRequest, "update request cannot be empty")
	ErrNoCheckoutSession       = failure.New(http.StatusBadRequest, "booking has no checkout session")
	ErrSessionMismatch         = failure.New(http.StatusBadRequest, "checkout session does not belong to this booking")
	ErrPaymentPending          = failure.New(http.StatusPaymentRequired, "payment has not been completed")
	ErrPaymentInitiationFailed = failure.New(http.StatusBadGateway, "failed to initiate payment")
	ErrPaymentProviderDown     = failure.New(http.StatusBadGateway, "payment provider is unavailable")
)
